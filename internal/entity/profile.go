package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile roles.
const (
	RoleClient = "client"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// Profile holds the application-side record for an identity-provider user.
// UserID is the stable identifier issued by the external identity provider.
type Profile struct {
	bun.BaseModel `bun:"table:profiles"`

	ID        int64     `bun:",pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull,unique"`
	Email     string    `bun:"email,notnull"`
	Name      string    `bun:"name,notnull"`
	Role      string    `bun:"role,notnull,default:'client'"`
	Phone     string    `bun:"phone,nullzero"`
	Location  string    `bun:"location,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `bun:"updated_at,nullzero"`
}

// ValidRole reports whether r is one of the known profile roles.
func ValidRole(r string) bool {
	switch r {
	case RoleClient, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
