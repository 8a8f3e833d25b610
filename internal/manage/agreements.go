package manage

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

// AgreementService guards the rental-agreement invariants and owns the
// agreement lifecycle. Note the owner is checked against the property's
// current owner only when an agreement is written; a later out-of-band owner
// change is not re-validated here.
type AgreementService struct {
	db     *gorm.DB
	log    *logrus.Logger
	ledger *LedgerService
}

func NewAgreementService(db *gorm.DB, log *logrus.Logger, ledger *LedgerService) *AgreementService {
	return &AgreementService{db: db, log: log, ledger: ledger}
}

type CreateAgreementInput struct {
	PropertyID       uint      `validate:"required"`
	OwnerID          uint      `validate:"required"`
	TenantID         uint      `validate:"required"`
	RentAmount       int64     `validate:"required,gt=0"`
	CommissionAmount int64     `validate:"min=0"`
	StartDate        time.Time `validate:"required"`
	EndDate          *time.Time
}

// Create runs the agreement gates and, when the agreement starts active,
// writes the first monthly ledger entry in the same transaction. The entry
// creation is an explicit step here, not a save-side effect.
func (s *AgreementService) Create(in CreateAgreementInput) (*models.RentalAgreement, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	start := models.DateOf(in.StartDate)
	var end *time.Time
	if in.EndDate != nil {
		d := models.DateOf(*in.EndDate)
		end = &d
	}

	var agreement *models.RentalAgreement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkGates(tx, in.PropertyID, in.OwnerID, in.TenantID, in.RentAmount, in.CommissionAmount, start, end); err != nil {
			return err
		}
		agreement = &models.RentalAgreement{
			PropertyID:       in.PropertyID,
			OwnerID:          in.OwnerID,
			TenantID:         in.TenantID,
			RentAmount:       in.RentAmount,
			CommissionAmount: in.CommissionAmount,
			StartDate:        start,
			EndDate:          end,
			Active:           true,
		}
		if err := tx.Create(agreement).Error; err != nil {
			return err
		}
		_, err := s.ledger.ensureRecord(tx, agreement, firstPeriod(agreement))
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"agreement_id": agreement.ID,
		"property_id":  agreement.PropertyID,
		"tenant_id":    agreement.TenantID,
	}).Info("rental agreement created")
	return agreement, nil
}

// firstPeriod picks the later of the current period and the agreement's
// start period for the initial ledger entry.
func firstPeriod(a *models.RentalAgreement) models.Period {
	p := models.PeriodOf(today())
	if start := models.PeriodOf(a.StartDate); p.Before(start) {
		return start
	}
	return p
}

// checkGates enforces the agreement invariants in order: commission below
// rent, end after start, owner is the property's current owner, owner and
// tenant distinct, both parties active and of the right role.
func (s *AgreementService) checkGates(tx *gorm.DB, propertyID, ownerID, tenantID uint, rent, commission int64, start time.Time, end *time.Time) error {
	if commission >= rent {
		return ErrCommissionNotBelowRent
	}
	if end != nil && !end.After(start) {
		return ErrEndNotAfterStart
	}

	var property models.Property
	if err := tx.First(&property, propertyID).Error; err != nil {
		return err
	}
	if property.CurrentOwnerID == nil || *property.CurrentOwnerID != ownerID {
		return ErrNotCurrentOwner
	}
	if ownerID == tenantID {
		return ErrOwnerIsTenant
	}

	var owner, tenant models.Client
	if err := tx.First(&owner, ownerID).Error; err != nil {
		return err
	}
	if !owner.IsOwner() {
		return ErrNotAnOwner
	}
	if !owner.Active {
		return ErrClientInactive
	}
	if err := tx.First(&tenant, tenantID).Error; err != nil {
		return err
	}
	if !tenant.IsTenant() {
		return ErrNotATenant
	}
	if !tenant.Active {
		return ErrClientInactive
	}
	return nil
}

// UpdateAgreementInput carries the terms that may change after creation.
// Property, owner and tenant are fixed once the agreement exists.
type UpdateAgreementInput struct {
	RentAmount       int64 `validate:"required,gt=0"`
	CommissionAmount int64 `validate:"min=0"`
	EndDate          *time.Time
}

func (s *AgreementService) Update(id uint, in UpdateAgreementInput) (*models.RentalAgreement, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var agreement models.RentalAgreement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&agreement, id).Error; err != nil {
			return err
		}
		var end *time.Time
		if in.EndDate != nil {
			d := models.DateOf(*in.EndDate)
			end = &d
		}
		if err := s.checkGates(tx, agreement.PropertyID, agreement.OwnerID, agreement.TenantID, in.RentAmount, in.CommissionAmount, agreement.StartDate, end); err != nil {
			return err
		}
		agreement.RentAmount = in.RentAmount
		agreement.CommissionAmount = in.CommissionAmount
		agreement.EndDate = end
		return tx.Save(&agreement).Error
	})
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

type TerminateInput struct {
	TerminationDate     time.Time `validate:"required"`
	DeleteFutureRecords bool
	Reason              string
}

// Terminate ends an agreement on the given date. The date must be inside
// the agreement's term and not in the past. A reason is appended to the
// termination month's ledger notes when that entry exists; future entries
// are optionally deleted.
func (s *AgreementService) Terminate(id uint, in TerminateInput) (*models.RentalAgreement, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	date := models.DateOf(in.TerminationDate)
	var agreement models.RentalAgreement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&agreement, id).Error; err != nil {
			return err
		}
		if !agreement.IsTerminationDateValid(date, today()) {
			return ErrInvalidTerminationDate
		}

		agreement.Active = false
		agreement.EndDate = &date
		if err := tx.Save(&agreement).Error; err != nil {
			return err
		}

		period := models.PeriodOf(date)
		if in.Reason != "" {
			if err := s.appendTerminationNote(tx, agreement.ID, period, in.Reason); err != nil {
				return err
			}
		}
		if in.DeleteFutureRecords {
			res := tx.Unscoped().
				Where("rental_agreement_id = ? AND (period_year > ? OR (period_year = ? AND period_month > ?))",
					agreement.ID, period.Year, period.Year, period.Month).
				Delete(&models.MonthlyRental{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				s.log.WithFields(logrus.Fields{
					"agreement_id": agreement.ID,
					"deleted":      res.RowsAffected,
				}).Info("future ledger entries deleted")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"agreement_id": agreement.ID, "end_date": date}).Info("rental agreement terminated")
	return &agreement, nil
}

func (s *AgreementService) appendTerminationNote(tx *gorm.DB, agreementID uint, period models.Period, reason string) error {
	var record models.MonthlyRental
	err := tx.Where("rental_agreement_id = ? AND period_year = ? AND period_month = ?",
		agreementID, period.Year, period.Month).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// no entry for the termination month, nothing to annotate
		return nil
	}
	if err != nil {
		return err
	}

	note := fmt.Sprintf("Terminated: %s", reason)
	if record.Notes != "" {
		note = record.Notes + "\n" + note
	}
	return tx.Model(&record).Update("notes", note).Error
}

func (s *AgreementService) Get(id uint) (*models.RentalAgreement, error) {
	var agreement models.RentalAgreement
	err := s.db.Preload("Property").Preload("Owner").Preload("Tenant").First(&agreement, id).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (s *AgreementService) List(activeOnly bool) ([]models.RentalAgreement, error) {
	q := s.db.Preload("Property").Preload("Owner").Preload("Tenant").Order("start_date DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var agreements []models.RentalAgreement
	if err := q.Find(&agreements).Error; err != nil {
		return nil, err
	}
	return agreements, nil
}

// Delete removes an agreement. Ledger entries protect it; they must be
// deleted first, which keeps billing history from vanishing by accident.
func (s *AgreementService) Delete(id uint) error {
	return s.db.Unscoped().Delete(&models.RentalAgreement{}, id).Error
}
