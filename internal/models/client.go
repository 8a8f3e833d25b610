package models

import "gorm.io/gorm"

type ClientRole string

const (
	RoleOwner  ClientRole = "OWNER"
	RoleTenant ClientRole = "TENANT"
)

// Client represents a person in the registry, either a property owner or a
// tenant. The role is assigned at registration and never changes afterwards.
type Client struct {
	gorm.Model
	Name   string     `gorm:"size:200;not null"`
	Email  string     `gorm:"not null"`
	Phone  string     `gorm:"size:20"`
	Role   ClientRole `gorm:"size:6;not null;index"`
	Active bool       `gorm:"not null;default:true"`
}

func (c *Client) IsOwner() bool  { return c.Role == RoleOwner }
func (c *Client) IsTenant() bool { return c.Role == RoleTenant }
