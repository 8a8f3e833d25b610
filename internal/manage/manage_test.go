package manage

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rental-manager/internal/db"
	"rental-manager/internal/migrate"
	"rental-manager/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(":memory:")
	require.NoError(t, err)
	_, err = migrate.NewMigrator(gdb).Up()
	require.NoError(t, err)
	return gdb
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// setNow pins the service clock for the duration of the test.
func setNow(t *testing.T, fixed time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type testServices struct {
	db         *gorm.DB
	clients    *ClientService
	properties *PropertyService
	agreements *AgreementService
	ledger     *LedgerService
	reports    *ReportService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	gdb := setupTestDB(t)
	log := testLogger()
	ledger := NewLedgerService(gdb, log)
	return &testServices{
		db:         gdb,
		clients:    NewClientService(gdb, log),
		properties: NewPropertyService(gdb, log),
		agreements: NewAgreementService(gdb, log, ledger),
		ledger:     ledger,
		reports:    NewReportService(gdb),
	}
}

func (ts *testServices) createOwner(t *testing.T, name string) *models.Client {
	t.Helper()
	owner, err := ts.clients.Create(CreateClientInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "123456789",
		Role:  models.RoleOwner,
	})
	require.NoError(t, err)
	return owner
}

func (ts *testServices) createTenant(t *testing.T, name string) *models.Client {
	t.Helper()
	tenant, err := ts.clients.Create(CreateClientInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "987654321",
		Role:  models.RoleTenant,
	})
	require.NoError(t, err)
	return tenant
}

func (ts *testServices) createProperty(t *testing.T, ownerID *uint) *models.Property {
	t.Helper()
	property, err := ts.properties.Create(CreatePropertyInput{
		PropertyFields: PropertyFields{
			Address:       "Test Address 123",
			Type:          models.PropertyApartment,
			OfferType:     models.OfferRent,
			Status:        models.PropertyAvailable,
			Price:         500000,
			SquareMeters:  60,
			Bedrooms:      2,
			Bathrooms:     1,
			DatePublished: date(2023, time.January, 1),
		},
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return property
}

func (ts *testServices) createAgreement(t *testing.T, propertyID, ownerID, tenantID uint, start time.Time) *models.RentalAgreement {
	t.Helper()
	agreement, err := ts.agreements.Create(CreateAgreementInput{
		PropertyID:       propertyID,
		OwnerID:          ownerID,
		TenantID:         tenantID,
		RentAmount:       500000,
		CommissionAmount: 50000,
		StartDate:        start,
	})
	require.NoError(t, err)
	return agreement
}

func (ts *testServices) openOwnershipRecords(t *testing.T, propertyID uint) []models.OwnershipRecord {
	t.Helper()
	var records []models.OwnershipRecord
	err := ts.db.Where("property_id = ? AND end_date IS NULL", propertyID).Find(&records).Error
	require.NoError(t, err)
	return records
}
