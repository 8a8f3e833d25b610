package manage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/models"
)

func TestMonthSummary(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2023, time.July, 3))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)

	first := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2023, time.January, 1))
	_, err := ts.agreements.Create(CreateAgreementInput{
		PropertyID:       property.ID,
		OwnerID:          owner.ID,
		TenantID:         tenant.ID,
		RentAmount:       300000,
		CommissionAmount: 30000,
		StartDate:        date(2023, time.February, 1),
	})
	require.NoError(t, err)

	// both agreements got their (2023, 7) entry on creation
	records, err := ts.ledger.ListByPeriod(2023, 7)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var firstRecord *models.MonthlyRental
	for i := range records {
		if records[i].RentalAgreementID == first.ID {
			firstRecord = &records[i]
		}
	}
	require.NotNil(t, firstRecord)

	_, err = ts.ledger.RecordPayment(firstRecord.ID, RecordPaymentInput{
		Status:      models.RentPaid,
		PaymentDate: date(2023, time.July, 5),
	})
	require.NoError(t, err)
	_, err = ts.ledger.RecordTransfer(firstRecord.ID, RecordTransferInput{
		TransferDate: date(2023, time.July, 6),
	})
	require.NoError(t, err)

	summary, err := ts.reports.MonthSummary(2023, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 1, summary.RentPaid)
	assert.Equal(t, 1, summary.RentPending)
	assert.Equal(t, 1, summary.TransfersCompleted)
	assert.Equal(t, 1, summary.TransfersPending)
	assert.Equal(t, int64(500000), summary.CollectedAmount)
	assert.Equal(t, int64(450000), summary.TransferredAmount)
	assert.Equal(t, int64(0), summary.PendingTransferAmount)
}

func TestMonthSummaryEmptyPeriod(t *testing.T) {
	ts := newTestServices(t)

	summary, err := ts.reports.MonthSummary(2030, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalRecords)

	_, err = ts.reports.MonthSummary(2030, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
