package report

// remediations maps a vulnerability type to its ordered remediation steps.
// This is presentation data: the steps mirror the guidance shown in the
// product's results view and are not derived from the scan itself.
var remediations = map[string][]string{
	"SQL Injection": {
		"Use prepared statements",
		"Apply parameter binding",
		"Validate and escape all input",
		"Prefer an ORM framework over hand-built queries",
	},
	"SSTI": {
		"Enable the template engine's sandbox/secure mode",
		"Never pass user input directly into templates",
		"Validate and filter input",
		"Use a safe template rendering library",
	},
	"Command Injection": {
		"Avoid invoking shell commands directly",
		"Use safe platform APIs instead of shell-outs",
		"Allowlist-validate input",
		"Escape command parameters",
	},
	"Path Traversal": {
		"Resolve to absolute paths before use",
		"Validate and normalise file names",
		"Restrict access to an allowed directory",
		"Consider a chroot environment",
	},
	"XSS": {
		"Apply output encoding",
		"Set a Content-Security-Policy header",
		"Filter HTML tags",
		"Use a vetted sanitiser library (e.g. DOMPurify)",
	},
	"CSP Missing": {
		"Add a Content-Security-Policy header",
		"Define an appropriate CSP policy",
		"Restrict inline scripts",
		"Use nonce- or hash-based CSP",
	},
	"MIME Sniffing": {
		"Add the X-Content-Type-Options: nosniff header",
		"Serve correct Content-Type values",
		"Harden file upload validation",
	},
}

// genericRemediation is returned for vulnerability types without a
// dedicated entry.
var genericRemediation = []string{
	"Consult a security specialist for an appropriate mitigation",
}

// RemediationSteps returns the ordered remediation steps for a
// vulnerability type, falling back to generic guidance.
func RemediationSteps(vulnType string) []string {
	if steps, ok := remediations[vulnType]; ok {
		return steps
	}
	return genericRemediation
}
