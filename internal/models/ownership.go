package models

import (
	"time"

	"gorm.io/gorm"
)

// OwnershipRecord is one interval in a property's ownership history. An open
// record (nil EndDate) marks the current owner; per property at most one
// record is open at a time. Records are written only through the property
// owner-change operation, never edited directly.
type OwnershipRecord struct {
	gorm.Model
	PropertyID uint       `gorm:"not null;index"`
	Property   *Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	OwnerID    uint       `gorm:"not null;index"`
	Owner      *Client    `gorm:"foreignKey:OwnerID"`
	StartDate  time.Time  `gorm:"type:date;not null"`
	EndDate    *time.Time `gorm:"type:date"`
}

func (r *OwnershipRecord) Open() bool { return r.EndDate == nil }
