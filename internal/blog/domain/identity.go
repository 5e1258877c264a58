package domain

// Identity is the authenticated caller, taken from a verified access token.
// A nil *Identity is an anonymous caller.
type Identity struct {
	UserID   int64
	Username string
}
