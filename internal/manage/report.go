package manage

import (
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

// ReportService is a read-only projection over the monthly rental ledger.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// MonthSummary aggregates one billing period.
type MonthSummary struct {
	Period       models.Period
	TotalRecords int

	RentPending int
	RentPaid    int
	RentLate    int
	RentUnpaid  int

	TransfersPending   int
	TransfersCompleted int

	// CollectedAmount sums the rent of paid and late-paid entries;
	// TransferredAmount the completed transfers; PendingTransferAmount the
	// transfers still owed on collected rent.
	CollectedAmount       int64
	TransferredAmount     int64
	PendingTransferAmount int64
}

func (s *ReportService) MonthSummary(year, month int) (*MonthSummary, error) {
	period := models.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	var records []models.MonthlyRental
	err := s.db.Preload("RentalAgreement").
		Where("period_year = ? AND period_month = ?", year, month).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{Period: period, TotalRecords: len(records)}
	for i := range records {
		record := &records[i]

		collected := false
		switch record.RentStatus {
		case models.RentPending:
			summary.RentPending++
		case models.RentPaid:
			summary.RentPaid++
			collected = true
		case models.RentLate:
			summary.RentLate++
			collected = true
		case models.RentUnpaid:
			summary.RentUnpaid++
		}
		if collected && record.RentalAgreement != nil {
			summary.CollectedAmount += record.RentalAgreement.RentAmount
		}

		switch record.TransferStatus {
		case models.TransferCompleted:
			summary.TransfersCompleted++
			summary.TransferredAmount += record.TransferAmount
		default:
			summary.TransfersPending++
			if collected {
				summary.PendingTransferAmount += record.TransferAmount
			}
		}
	}
	return summary, nil
}
