package accounts

import "time"

// Role
// @Enum customer,admin
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      Role

	PasswordHash string
	IsStaff      bool

	DateJoined time.Time
}
