package manage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrValidation is the family root for invariant violations. The specific
// sentinels wrap it so callers can match either the family or the case with
// errors.Is.
var ErrValidation = errors.New("validation_failed")

var (
	ErrCommissionNotBelowRent = fmt.Errorf("%w: commission_not_below_rent", ErrValidation)
	ErrEndNotAfterStart       = fmt.Errorf("%w: end_date_not_after_start_date", ErrValidation)
	ErrNotCurrentOwner        = fmt.Errorf("%w: owner_not_current_property_owner", ErrValidation)
	ErrOwnerIsTenant          = fmt.Errorf("%w: owner_equals_tenant", ErrValidation)
	ErrNotAnOwner             = fmt.Errorf("%w: client_not_an_owner", ErrValidation)
	ErrNotATenant             = fmt.Errorf("%w: client_not_a_tenant", ErrValidation)
	ErrClientInactive         = fmt.Errorf("%w: client_inactive", ErrValidation)
	ErrInvalidTerminationDate = fmt.Errorf("%w: invalid_termination_date", ErrValidation)
	ErrPeriodOutsideAgreement = fmt.Errorf("%w: period_outside_agreement", ErrValidation)
	ErrInvalidPeriod          = fmt.Errorf("%w: invalid_period", ErrValidation)
	ErrFloorOnHouse           = fmt.Errorf("%w: house_cannot_have_floor_number", ErrValidation)
	ErrHouseNeedsBedroom      = fmt.Errorf("%w: house_needs_bedroom", ErrValidation)
)

// IsValidation reports whether err is an invariant violation, including
// input-struct validation failures. Nothing was persisted in either case.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidation) {
		return true
	}
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// IsConflict reports a uniqueness violation. Batch initialization treats it
// as "already exists", not a failure.
func IsConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite can surface the raw constraint message instead of the sentinel
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsProtected reports a delete blocked by protect-on-delete references. The
// referencing rows must be removed or reassigned first.
func IsProtected(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
