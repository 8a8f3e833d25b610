package manage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/models"
)

func TestAgreementGates(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 10))

	ownerA := ts.createOwner(t, "owner-a")
	ownerB := ts.createOwner(t, "owner-b")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &ownerA.ID)

	base := CreateAgreementInput{
		PropertyID:       property.ID,
		OwnerID:          ownerA.ID,
		TenantID:         tenant.ID,
		RentAmount:       500000,
		CommissionAmount: 50000,
		StartDate:        date(2024, time.January, 1),
	}

	t.Run("commission must be strictly below rent", func(t *testing.T) {
		in := base
		in.CommissionAmount = 500000
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrCommissionNotBelowRent)
	})

	t.Run("end date must be after start date", func(t *testing.T) {
		in := base
		end := in.StartDate
		in.EndDate = &end
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrEndNotAfterStart)
	})

	t.Run("owner must be the property's current owner", func(t *testing.T) {
		in := base
		in.OwnerID = ownerB.ID
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrNotCurrentOwner)
	})

	t.Run("owner and tenant must differ", func(t *testing.T) {
		in := base
		in.TenantID = ownerA.ID
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrOwnerIsTenant)
	})

	t.Run("tenant must have the tenant role", func(t *testing.T) {
		in := base
		in.TenantID = ownerB.ID
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrNotATenant)
	})

	t.Run("deactivated tenant is rejected", func(t *testing.T) {
		inactive := ts.createTenant(t, "inactive-tenant")
		require.NoError(t, ts.clients.Deactivate(inactive.ID))
		in := base
		in.TenantID = inactive.ID
		_, err := ts.agreements.Create(in)
		assert.ErrorIs(t, err, ErrClientInactive)
	})

	t.Run("valid input passes every gate", func(t *testing.T) {
		agreement, err := ts.agreements.Create(base)
		require.NoError(t, err)
		assert.True(t, agreement.Active)
		assert.Equal(t, int64(450000), agreement.TransferAmount())
	})
}

func TestCreateAgreementWritesFirstLedgerEntry(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 15))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.January, 1))

	records, err := ts.ledger.ListByAgreement(agreement.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Period{Year: 2024, Month: 1}, records[0].Period())
	assert.Equal(t, models.RentPending, records[0].RentStatus)
	assert.Equal(t, models.TransferPending, records[0].TransferStatus)
	assert.Equal(t, int64(450000), records[0].TransferAmount)
}

func TestCreateAgreementWithFutureStartUsesStartPeriod(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 15))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.March, 1))

	records, err := ts.ledger.ListByAgreement(agreement.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Period{Year: 2024, Month: 3}, records[0].Period())
}

func TestUpdateAgreementRerunsGates(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 10))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.January, 1))

	_, err := ts.agreements.Update(agreement.ID, UpdateAgreementInput{
		RentAmount:       400000,
		CommissionAmount: 400000,
	})
	assert.ErrorIs(t, err, ErrCommissionNotBelowRent)

	updated, err := ts.agreements.Update(agreement.ID, UpdateAgreementInput{
		RentAmount:       400000,
		CommissionAmount: 40000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(360000), updated.TransferAmount())
}

func TestTerminateRejectsInvalidDates(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 1))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.January, 10))

	// one day before the agreement starts
	_, err := ts.agreements.Terminate(agreement.ID, TerminateInput{
		TerminationDate: date(2024, time.January, 9),
	})
	assert.ErrorIs(t, err, ErrInvalidTerminationDate)

	// in the past
	setNow(t, date(2024, time.May, 1))
	_, err = ts.agreements.Terminate(agreement.ID, TerminateInput{
		TerminationDate: date(2024, time.April, 30),
	})
	assert.ErrorIs(t, err, ErrInvalidTerminationDate)

	// past a fixed end date
	end := date(2024, time.June, 30)
	_, err = ts.agreements.Update(agreement.ID, UpdateAgreementInput{
		RentAmount:       500000,
		CommissionAmount: 50000,
		EndDate:          &end,
	})
	require.NoError(t, err)
	_, err = ts.agreements.Terminate(agreement.ID, TerminateInput{
		TerminationDate: date(2024, time.July, 15),
	})
	assert.ErrorIs(t, err, ErrInvalidTerminationDate)
}

func TestTerminateAnnotatesAndPrunesLedger(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.March, 10))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.January, 1))

	for _, month := range []int{4, 5} {
		created, _, err := ts.ledger.InitializeMonth(2024, month)
		require.NoError(t, err)
		require.Equal(t, 1, created)
	}

	terminated, err := ts.agreements.Terminate(agreement.ID, TerminateInput{
		TerminationDate:     date(2024, time.March, 20),
		DeleteFutureRecords: true,
		Reason:              "tenant bought a house",
	})
	require.NoError(t, err)
	assert.False(t, terminated.Active)
	require.NotNil(t, terminated.EndDate)
	assert.Equal(t, date(2024, time.March, 20), *terminated.EndDate)

	records, err := ts.ledger.ListByAgreement(agreement.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Period{Year: 2024, Month: 3}, records[0].Period())
	assert.Contains(t, records[0].Notes, "Terminated: tenant bought a house")
}

func TestTerminateWithoutLedgerEntryForMonth(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.March, 10))

	owner := ts.createOwner(t, "owner")
	tenant := ts.createTenant(t, "tenant")
	property := ts.createProperty(t, &owner.ID)
	agreement := ts.createAgreement(t, property.ID, owner.ID, tenant.ID, date(2024, time.January, 1))

	// no entry for April exists; the reason has nowhere to go but the
	// termination must still succeed
	setNow(t, date(2024, time.April, 1))
	terminated, err := ts.agreements.Terminate(agreement.ID, TerminateInput{
		TerminationDate: date(2024, time.April, 15),
		Reason:          "mutual consent",
	})
	require.NoError(t, err)
	assert.False(t, terminated.Active)
}

func TestEndToEndRentalFlow(t *testing.T) {
	ts := newTestServices(t)
	setNow(t, date(2024, time.January, 10))

	ownerA := ts.createOwner(t, "client-a")
	tenantB := ts.createTenant(t, "client-b")
	propertyX := ts.createProperty(t, &ownerA.ID)

	agreement, err := ts.agreements.Create(CreateAgreementInput{
		PropertyID:       propertyX.ID,
		OwnerID:          ownerA.ID,
		TenantID:         tenantB.ID,
		RentAmount:       500000,
		CommissionAmount: 50000,
		StartDate:        date(2024, time.January, 1),
	})
	require.NoError(t, err)

	records, err := ts.ledger.ListByAgreement(agreement.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.Period{Year: 2024, Month: 1}, records[0].Period())
	assert.Equal(t, int64(450000), records[0].TransferAmount)

	created, existing, err := ts.ledger.InitializeMonth(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, existing)
}
