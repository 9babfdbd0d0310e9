package auth

// Claims representa la identidad extraída del token.
type Claims struct {
	UserID   int64
	Username string
}
