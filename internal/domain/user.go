package domain

import "time"

// User represents a bank customer or employee. The engines only care about
// identity and account ownership; registration and roles live outside the
// core.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnsAccount reports whether the user owns the given account. The ownership
// rule for transfers: a performing user may only move money out of accounts
// they own.
func (u *User) OwnsAccount(a *Account) bool {
	return a != nil && a.UserID == u.ID
}
