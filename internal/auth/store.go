package auth

// UserStore maps usernames to password verifiers.
//
// Create does not enforce uniqueness; callers check Exists first and a
// concurrent duplicate resolves as last-write-wins. Verify reports false for
// an unknown username exactly as it does for a wrong password.
type UserStore interface {
	Create(username, password string) error
	Exists(username string) bool
	Verify(username, password string) bool
}
