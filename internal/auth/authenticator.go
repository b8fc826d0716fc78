package auth

import "context"

// Authenticator turns a bearer token into the Principal that presented it.
// Anonymous calculator sessions never pass through here; only requests that
// carry an Authorization header do.
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}
