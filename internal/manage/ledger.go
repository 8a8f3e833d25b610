package manage

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

// LedgerService tracks rent payments and owner transfers per agreement and
// calendar month.
type LedgerService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewLedgerService(db *gorm.DB, log *logrus.Logger) *LedgerService {
	return &LedgerService{db: db, log: log}
}

type RecordPaymentInput struct {
	Status      models.RentStatus `validate:"required,oneof=PAID LATE"`
	PaymentDate time.Time         `validate:"required"`
	Notes       string
}

// RecordPayment marks the rent of one ledger entry as paid or late. The
// payment date is mandatory for both.
func (s *LedgerService) RecordPayment(recordID uint, in RecordPaymentInput) (*models.MonthlyRental, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var record models.MonthlyRental
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, recordID).Error; err != nil {
			return err
		}
		date := models.DateOf(in.PaymentDate)
		record.RentStatus = in.Status
		record.PaymentDate = &date
		if in.Notes != "" {
			record.Notes = in.Notes
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"record_id": record.ID,
		"period":    record.Period().String(),
		"status":    record.RentStatus,
	}).Info("rent payment recorded")
	return &record, nil
}

// MarkUnpaid flags an entry whose rent will not be collected. No payment
// date applies.
func (s *LedgerService) MarkUnpaid(recordID uint, notes string) (*models.MonthlyRental, error) {
	var record models.MonthlyRental
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, recordID).Error; err != nil {
			return err
		}
		record.RentStatus = models.RentUnpaid
		record.PaymentDate = nil
		if notes != "" {
			record.Notes = notes
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

type RecordTransferInput struct {
	TransferAmount *int64    `validate:"omitempty,gt=0"`
	TransferDate   time.Time `validate:"required"`
	Notes          string
}

// RecordTransfer completes the owner transfer for one ledger entry. The
// amount defaults to the agreement's rent minus commission. A completed
// transfer implies the rent was collected, so the rent status is coerced to
// paid and a missing payment date is backfilled with the transfer date.
func (s *LedgerService) RecordTransfer(recordID uint, in RecordTransferInput) (*models.MonthlyRental, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var record models.MonthlyRental
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("RentalAgreement").First(&record, recordID).Error; err != nil {
			return err
		}
		date := models.DateOf(in.TransferDate)
		record.TransferStatus = models.TransferCompleted
		record.TransferDate = &date
		if in.TransferAmount != nil {
			record.TransferAmount = *in.TransferAmount
		} else if record.TransferAmount == 0 && record.RentalAgreement != nil {
			record.TransferAmount = record.RentalAgreement.TransferAmount()
		}
		record.RentStatus = models.RentPaid
		if record.PaymentDate == nil {
			record.PaymentDate = &date
		}
		if in.Notes != "" {
			record.Notes = in.Notes
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"record_id": record.ID,
		"period":    record.Period().String(),
		"amount":    record.TransferAmount,
	}).Info("owner transfer recorded")
	return &record, nil
}

// InitializeMonth creates the ledger entry for every active agreement whose
// term covers the period. Safe to call repeatedly: entries that already
// exist, including ones created concurrently, are counted rather than
// failed.
func (s *LedgerService) InitializeMonth(year, month int) (created, existing int, err error) {
	period := models.Period{Year: year, Month: month}
	if !period.Valid() {
		return 0, 0, ErrInvalidPeriod
	}

	log := s.log.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"period": period.String(),
	})

	var agreements []models.RentalAgreement
	err = s.db.
		Where("active = ? AND start_date < ? AND (end_date IS NULL OR end_date >= ?)",
			true, period.Next().Start(), period.Start()).
		Find(&agreements).Error
	if err != nil {
		return 0, 0, err
	}

	for i := range agreements {
		ok, err := s.ensureRecord(s.db, &agreements[i], period)
		if err != nil {
			return created, existing, err
		}
		if ok {
			created++
		} else {
			existing++
		}
	}
	log.WithFields(logrus.Fields{"created": created, "existing": existing}).Info("monthly ledger initialized")
	return created, existing, nil
}

// ensureRecord creates the entry for one agreement and period if absent.
// The unique index carries the idempotence: a duplicate create reports
// "already exists" instead of failing.
func (s *LedgerService) ensureRecord(tx *gorm.DB, agreement *models.RentalAgreement, period models.Period) (bool, error) {
	if !agreement.ContainsPeriod(period) {
		return false, ErrPeriodOutsideAgreement
	}

	record := &models.MonthlyRental{
		RentalAgreementID: agreement.ID,
		PeriodYear:        period.Year,
		PeriodMonth:       period.Month,
		RentStatus:        models.RentPending,
		TransferStatus:    models.TransferPending,
		TransferAmount:    agreement.TransferAmount(),
	}
	err := tx.Create(record).Error
	switch {
	case err == nil:
		return true, nil
	case IsConflict(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *LedgerService) Get(id uint) (*models.MonthlyRental, error) {
	var record models.MonthlyRental
	err := s.db.Preload("RentalAgreement").Preload("RentalAgreement.Property").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByPeriod returns every ledger entry of one billing period.
func (s *LedgerService) ListByPeriod(year, month int) ([]models.MonthlyRental, error) {
	period := models.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	var records []models.MonthlyRental
	err := s.db.Preload("RentalAgreement").Preload("RentalAgreement.Property").
		Where("period_year = ? AND period_month = ?", year, month).
		Order("rental_agreement_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByAgreement returns an agreement's ledger, newest period first.
func (s *LedgerService) ListByAgreement(agreementID uint) ([]models.MonthlyRental, error) {
	var records []models.MonthlyRental
	err := s.db.Where("rental_agreement_id = ?", agreementID).
		Order("period_year DESC, period_month DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
