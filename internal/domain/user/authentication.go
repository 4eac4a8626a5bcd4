package user

// PasswordHasher is the password half of the credential codec.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails on malformed hashes; it reports false instead.
	Verify(password, hash string) bool
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) bool {
	if u.passwordHash == "" {
		return false
	}
	return hasher.Verify(password, u.passwordHash)
}

// CheckLoginAllowed returns the account-state error that blocks login, if any.
// Checked after credentials so that state is never revealed to a wrong password.
func (u *User) CheckLoginAllowed() error {
	if !u.active {
		return ErrAccountDeactivated
	}
	if !u.activated {
		return ErrAccountPending
	}
	return nil
}
