package domain

// TokenPair is the result of a successful credential check.
type TokenPair struct {
	Access  string
	Refresh string
}
