package entity

import (
	"time"
)

// User is the aggregate root for the account domain. Username mirrors Email
// (the email doubles as the login name) and both columns are written together
// on every basic-info update.
//
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID           string
	Email        string
	Username     string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	Bio          string
	ProfileImage string // object key in the image store, empty when never uploaded
	Address      *Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetEmail keeps the login name in lock-step with the email.
func (u *User) SetEmail(email string) {
	u.Email = email
	u.Username = email
}

// Address is owned 1:1 by a User and never exists on its own.
// Line2 is the only optional field.
type Address struct {
	UserID     string
	Line1      string
	Line2      string
	PostalCode string
	City       string
	UpdatedAt  time.Time
}
