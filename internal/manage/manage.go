// Package manage holds the mutation entry points of the back office:
// client and property registries, the ownership history ledger, rental
// agreements and the monthly rental ledger. Front ends must go through these
// services rather than write records directly.
package manage

import (
	"time"

	"github.com/go-playground/validator/v10"

	"rental-manager/internal/models"
)

var validate = validator.New()

// now is a hook so tests can pin the clock.
var now = time.Now

func today() time.Time {
	return models.DateOf(now())
}
