package model

import "time"

// AdminUser is an administrator of a tenant account. Admin email addresses
// are the recipients of expiry warning notifications, owner first.
type AdminUser struct {
	ID        string    `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Email     string    `json:"email" db:"email"`
	IsOwner   bool      `json:"is_owner" db:"is_owner"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
