package models

import "testing"

func TestSeverityWeightOrdering(t *testing.T) {
	order := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityUnknown}
	for i := 1; i < len(order); i++ {
		if order[i-1].Weight() <= order[i].Weight() {
			t.Fatalf("%s should outweigh %s", order[i-1], order[i])
		}
	}
}

func TestMapSeverity(t *testing.T) {
	cases := []struct {
		raw  string
		want Severity
	}{
		{"CRITICAL", SeverityCritical},
		{"critical", SeverityCritical},
		{"HIGH", SeverityHigh},
		{"MODERATE", SeverityMedium},
		{"low", SeverityLow},
		{"", SeverityUnknown},
		{"SEVERE", SeverityUnknown},
	}
	for _, tc := range cases {
		if got := MapSeverity(tc.raw); got != tc.want {
			t.Errorf("MapSeverity(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestAnalysisStatusIsTerminal(t *testing.T) {
	if AnalysisPending.IsTerminal() || AnalysisInProgress.IsTerminal() {
		t.Fatal("pending and in-progress are not terminal")
	}
	if !AnalysisCompleted.IsTerminal() || !AnalysisFailed.IsTerminal() {
		t.Fatal("completed and failed are terminal")
	}
	if !AnalysisStatus("GARBAGE").IsTerminal() {
		t.Fatal("unrecognised statuses must be terminal")
	}
}
