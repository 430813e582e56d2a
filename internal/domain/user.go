package domain

import "time"

type UserId int64

// User is a verified account. Created only through a successful OTP
// verification; the password hash is the only credential stored.
type User struct {
	Id       UserId
	Name     string
	Email    string
	PassHash string
	Created  time.Time
}

// PendingSignup holds an unverified signup attempt. At most one pending
// record is live per email; a new signup-init replaces the previous one.
type PendingSignup struct {
	Email    string
	Name     string
	PassHash string
	Otp      string
	Expires  time.Time
}
