package models

import (
	"time"

	"github.com/google/uuid"
)

// PermissionGrant is a single capability record for a staff member.
//
// At most one record exists per (staff, resource, action); re-granting the
// same triple overwrites the Granted flag. Absence of a record is equivalent
// to an explicit denial.
type PermissionGrant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StaffID   uuid.UUID `json:"staffId" gorm:"type:uuid;not null;uniqueIndex:idx_staff_resource_action"`
	Resource  string    `json:"resource" gorm:"not null;uniqueIndex:idx_staff_resource_action"`
	Action    string    `json:"action" gorm:"not null;uniqueIndex:idx_staff_resource_action"`
	Granted   bool      `json:"granted" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PermissionGrant) TableName() string {
	return "permission_grants"
}

// GrantRequest grants or denies one (resource, action) pair.
type GrantRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Granted  *bool  `json:"granted" binding:"required"`
}

// BulkGrantRequest applies a batch of grants atomically.
type BulkGrantRequest struct {
	Grants []GrantRequest `json:"grants" binding:"required,min=1,dive"`
}

// GrantResponse wraps a single grant.
type GrantResponse struct {
	Success bool             `json:"success"`
	Data    *PermissionGrant `json:"data,omitempty"`
	Message *string          `json:"message,omitempty"`
}

// GrantListResponse wraps a staff member's grants.
type GrantListResponse struct {
	Success bool              `json:"success"`
	Data    []PermissionGrant `json:"data"`
}

// Known resource families and actions. Grants are validated against this
// registry at the administration boundary so a typo cannot create an
// unreachable grant. Route guards reference the same tags.
var (
	KnownResources = []string{
		"products",
		"assets",
		"attributes",
		"families",
		"categories",
		"integrations",
		"api-keys",
		"exports",
	}

	KnownActions = []string{
		"create",
		"read",
		"update",
		"delete",
		"manage",
		"export",
	}
)

// ValidGrantTarget reports whether the (resource, action) pair is registered.
func ValidGrantTarget(resource, action string) bool {
	return containsString(KnownResources, resource) && containsString(KnownActions, action)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
