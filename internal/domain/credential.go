package domain

// PasswordScheme decides how the password field of a user is stored and
// checked. Login and user creation go through it so the plain-text scheme
// can be replaced by a hashed one without touching callers.
type PasswordScheme interface {
	// Hash turns a password into the value kept in User.Password.
	Hash(password string) (string, error)
	// Verify reports whether attempt matches the stored value.
	Verify(stored, attempt string) bool
}
