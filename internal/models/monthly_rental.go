package models

import (
	"time"

	"gorm.io/gorm"
)

type RentStatus string

const (
	RentPending RentStatus = "PENDING"
	RentPaid    RentStatus = "PAID"
	RentLate    RentStatus = "LATE"
	RentUnpaid  RentStatus = "UNPAID"
)

type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
)

// MonthlyRental is one billing-cycle entry in an agreement's rental ledger.
// The composite unique index makes ledger initialization idempotent: a
// concurrent or repeated create for the same period fails as a duplicate and
// is counted as existing.
type MonthlyRental struct {
	gorm.Model
	RentalAgreementID uint             `gorm:"not null;uniqueIndex:idx_monthly_rentals_agreement_period"`
	RentalAgreement   *RentalAgreement `gorm:"foreignKey:RentalAgreementID;constraint:OnDelete:RESTRICT"`
	PeriodYear        int              `gorm:"not null;uniqueIndex:idx_monthly_rentals_agreement_period"`
	PeriodMonth       int              `gorm:"not null;uniqueIndex:idx_monthly_rentals_agreement_period"`

	RentStatus  RentStatus `gorm:"size:10;not null;default:PENDING"`
	PaymentDate *time.Time `gorm:"type:date"`

	TransferAmount int64          `gorm:"not null"`
	TransferStatus TransferStatus `gorm:"size:10;not null;default:PENDING"`
	TransferDate   *time.Time     `gorm:"type:date"`

	Notes string
}

func (m *MonthlyRental) Period() Period {
	return Period{Year: m.PeriodYear, Month: m.PeriodMonth}
}
