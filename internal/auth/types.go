package auth

import "time"

type Principal struct {
	Issuer   string
	Subject  string
	Audience any
	Claims   map[string]any
}

// Session identifies one anonymous calculator session. It is minted on first
// contact and carried in a signed cookie; all history is keyed by its ID.
type Session struct {
	ID       string
	IssuedAt time.Time
}

type Config struct {
	Enabled  bool
	Issuer   string
	Audience string
	JWKSURL  string
}
