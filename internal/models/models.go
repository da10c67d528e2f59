package models

import (
	"time"
)

// Account roles. The CHECK constraint on users.role mirrors this set so an
// invalid value can never reach the table, whatever the application does.
const (
	RoleTraveler        = "traveler"
	RoleServiceProvider = "service_provider"
	RoleAdmin           = "admin"
)

// Authentication providers for a user account.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderBoth   = "both"
)

func ValidRole(role string) bool {
	switch role {
	case RoleTraveler, RoleServiceProvider, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignableRole reports whether a user may pick this role for themselves
// at registration. Admin accounts are only ever created by another admin.
func SelfAssignableRole(role string) bool {
	return role == RoleTraveler || role == RoleServiceProvider
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     *string   `gorm:"uniqueIndex" json:"-"`
	Role         string    `gorm:"not null;check:role IN ('traveler','service_provider','admin')" json:"role"`
	AuthProvider string    `gorm:"not null;check:auth_provider IN ('email','google','both')" json:"auth_provider"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Listing is a travel service offered by a service_provider.
type Listing struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID  uint      `gorm:"index;not null" json:"provider_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Price       float64   `gorm:"not null" json:"price"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartItem rows never carry quantity zero: a quantity update that reaches
// zero deletes the row instead.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_listing" json:"user_id"`
	ListingID uint `gorm:"not null;uniqueIndex:idx_cart_user_listing" json:"listing_id"`
	Quantity  uint `gorm:"not null;check:quantity > 0" json:"quantity"`
}
