package models

// Session is the authenticated identity held client-side after login.
// An empty Token means logged out; every privileged action checks this
// before touching the network.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoggedIn reports whether a usable credential is present.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
