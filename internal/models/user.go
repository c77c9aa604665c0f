package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the closed set of account roles.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleOwner UserRole = "OWNER"
	RoleStaff UserRole = "STAFF"
)

// User represents a principal record.
//
// Hierarchy: ADMIN is seeded once at bootstrap, OWNER accounts are created by
// an ADMIN, STAFF accounts are created by their OWNER. OwnerID is set only for
// STAFF and references the owning OWNER account. Catalog data always belongs
// to an owner id, never to a staff id.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FirstName    string     `json:"firstName" gorm:"not null"`
	LastName     string     `json:"lastName" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(16);not null;index"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty" gorm:"type:uuid;index"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserDTO is the safe response shape for user records.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      UserRole   `json:"role"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToDTO converts a User to its response shape, dropping the credential hash.
func (u *User) ToDTO() *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		OwnerID:   u.OwnerID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest creates an OWNER (admin caller) or STAFF (owner caller).
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// UpdateUserRequest updates mutable profile fields.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// LoginRequest is the credential payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *UserDTO  `json:"user"`
}

// MeResponse is the authenticated principal view.
type MeResponse struct {
	User            *UserDTO   `json:"user"`
	EffectiveUserID *uuid.UUID `json:"effectiveUserId"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool     `json:"success"`
	Data    *UserDTO `json:"data,omitempty"`
	Message *string  `json:"message,omitempty"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Success    bool            `json:"success"`
	Data       []UserDTO       `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}
