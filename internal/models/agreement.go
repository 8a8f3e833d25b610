package models

import (
	"time"

	"gorm.io/gorm"
)

// RentalAgreement binds a property, its current owner and a tenant with the
// recurring commercial terms. Amounts are whole currency units.
type RentalAgreement struct {
	gorm.Model
	PropertyID uint      `gorm:"not null;index"`
	Property   *Property `gorm:"foreignKey:PropertyID"`
	OwnerID    uint      `gorm:"not null"`
	Owner      *Client   `gorm:"foreignKey:OwnerID"`
	TenantID   uint      `gorm:"not null"`
	Tenant     *Client   `gorm:"foreignKey:TenantID"`

	RentAmount       int64      `gorm:"not null"`
	CommissionAmount int64      `gorm:"not null"`
	StartDate        time.Time  `gorm:"type:date;not null"`
	EndDate          *time.Time `gorm:"type:date"`
	Active           bool       `gorm:"not null;default:true"`
}

// TransferAmount is the sum due to the owner after the agency commission.
func (a *RentalAgreement) TransferAmount() int64 {
	return a.RentAmount - a.CommissionAmount
}

// ContainsPeriod reports whether the billing period falls inside the
// agreement's term, compared at month granularity.
func (a *RentalAgreement) ContainsPeriod(p Period) bool {
	if p.Before(PeriodOf(a.StartDate)) {
		return false
	}
	if a.EndDate != nil && p.After(PeriodOf(*a.EndDate)) {
		return false
	}
	return true
}

// IsTerminationDateValid checks that d is not before the agreement start,
// not in the past, and not past a fixed end date.
func (a *RentalAgreement) IsTerminationDateValid(d, today time.Time) bool {
	if d.Before(a.StartDate) {
		return false
	}
	if d.Before(today) {
		return false
	}
	if a.EndDate != nil && d.After(*a.EndDate) {
		return false
	}
	return true
}
