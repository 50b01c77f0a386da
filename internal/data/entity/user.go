package entity

// User may be a durable account or an ephemeral guest. Guests exist only to
// hold pre-reserved bookings until assignment and are deleted once they own
// zero bookings.
type User struct {
	Base
	Name         string  `db:"name"`
	Email        *string `db:"email"`
	Phone        *string `db:"phone"`
	PasswordHash string  `db:"password"`
	IsGuestUser  bool    `db:"is_guest_user"`
}
