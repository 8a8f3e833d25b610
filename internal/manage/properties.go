package manage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

type PropertyService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewPropertyService(db *gorm.DB, log *logrus.Logger) *PropertyService {
	return &PropertyService{db: db, log: log}
}

// PropertyFields are the listing fields shared by create and update.
type PropertyFields struct {
	Address        string                `validate:"required,max=255"`
	Type           models.PropertyType   `validate:"required,oneof=HOUSE APT OFC LAND"`
	OfferType      models.OfferType      `validate:"required,oneof=RENT SALE"`
	Status         models.PropertyStatus `validate:"required,oneof=AVL RSV RNT SLD"`
	Price          int64                 `validate:"min=0"`
	CommonExpenses *int64
	SquareMeters   int `validate:"min=0"`
	Bedrooms       int `validate:"min=0"`
	Bathrooms      int `validate:"min=0"`
	HasParking     bool
	HasStorageUnit bool
	FloorNumber    *int
	Amenities      string
	PetsAllowed    bool
	Requirements   string
	Comments       string
	Description    string
	DatePublished  time.Time
}

func checkListingRules(f PropertyFields) error {
	if f.Type == models.PropertyHouse && f.FloorNumber != nil {
		return ErrFloorOnHouse
	}
	if f.Type == models.PropertyHouse && f.Bedrooms < 1 {
		return ErrHouseNeedsBedroom
	}
	return nil
}

type CreatePropertyInput struct {
	PropertyFields
	OwnerID *uint
}

// Create assigns the next sequential code and, when an owner is given, opens
// the first ownership record through the same path every later owner change
// takes.
func (s *PropertyService) Create(in CreatePropertyInput) (*models.Property, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkListingRules(in.PropertyFields); err != nil {
		return nil, err
	}

	var property *models.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := nextPropertyCode(tx)
		if err != nil {
			return err
		}
		property = &models.Property{
			Code:           code,
			Address:        in.Address,
			Type:           in.Type,
			OfferType:      in.OfferType,
			Status:         in.Status,
			Price:          in.Price,
			CommonExpenses: in.CommonExpenses,
			SquareMeters:   in.SquareMeters,
			Bedrooms:       in.Bedrooms,
			Bathrooms:      in.Bathrooms,
			HasParking:     in.HasParking,
			HasStorageUnit: in.HasStorageUnit,
			FloorNumber:    in.FloorNumber,
			Amenities:      in.Amenities,
			PetsAllowed:    in.PetsAllowed,
			Requirements:   in.Requirements,
			Comments:       in.Comments,
			Description:    in.Description,
			DatePublished:  models.DateOf(in.DatePublished),
		}
		if err := tx.Create(property).Error; err != nil {
			return err
		}
		if in.OwnerID != nil {
			return s.changeOwner(tx, property, in.OwnerID, today())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"property_id": property.ID, "code": property.Code}).Info("property registered")
	return property, nil
}

// nextPropertyCode derives the next P%04d code from the highest existing
// one. Soft-deleted rows still count so codes are never reused.
func nextPropertyCode(tx *gorm.DB) (string, error) {
	var last models.Property
	err := tx.Unscoped().Select("code").Order("code DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "P0001", nil
	}
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(strings.TrimPrefix(last.Code, "P"))
	if err != nil {
		return "", fmt.Errorf("malformed property code %q: %w", last.Code, err)
	}
	return fmt.Sprintf("P%04d", n+1), nil
}

type UpdatePropertyInput struct {
	PropertyFields
	OwnerID *uint
}

// Update saves the listing fields and, when the owner differs from the
// stored one, routes the change through the ownership ledger exactly once.
func (s *PropertyService) Update(id uint, in UpdatePropertyInput) (*models.Property, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkListingRules(in.PropertyFields); err != nil {
		return nil, err
	}

	var property models.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, id).Error; err != nil {
			return err
		}
		property.Address = in.Address
		property.Type = in.Type
		property.OfferType = in.OfferType
		property.Status = in.Status
		property.Price = in.Price
		property.CommonExpenses = in.CommonExpenses
		property.SquareMeters = in.SquareMeters
		property.Bedrooms = in.Bedrooms
		property.Bathrooms = in.Bathrooms
		property.HasParking = in.HasParking
		property.HasStorageUnit = in.HasStorageUnit
		property.FloorNumber = in.FloorNumber
		property.Amenities = in.Amenities
		property.PetsAllowed = in.PetsAllowed
		property.Requirements = in.Requirements
		property.Comments = in.Comments
		property.Description = in.Description
		property.DatePublished = models.DateOf(in.DatePublished)
		if err := tx.Save(&property).Error; err != nil {
			return err
		}
		if ownerChanged(property.CurrentOwnerID, in.OwnerID) {
			return s.changeOwner(tx, &property, in.OwnerID, today())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func ownerChanged(current, next *uint) bool {
	switch {
	case current == nil && next == nil:
		return false
	case current == nil || next == nil:
		return true
	default:
		return *current != *next
	}
}

// ChangeOwner closes the open ownership interval, opens one for the new
// owner and updates the property's current owner, all in one transaction.
// A nil newOwnerID leaves the property without an owner.
func (s *PropertyService) ChangeOwner(propertyID uint, newOwnerID *uint, changeDate time.Time) (*models.Property, error) {
	var property models.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, propertyID).Error; err != nil {
			return err
		}
		return s.changeOwner(tx, &property, newOwnerID, models.DateOf(changeDate))
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) changeOwner(tx *gorm.DB, property *models.Property, newOwnerID *uint, changeDate time.Time) error {
	if property.CurrentOwnerID != nil {
		res := tx.Model(&models.OwnershipRecord{}).
			Where("property_id = ? AND owner_id = ? AND end_date IS NULL", property.ID, *property.CurrentOwnerID).
			Update("end_date", changeDate)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Inconsistent history: the registry named an owner but no open
			// interval exists. Proceed so the registry can be repaired, but
			// leave a trace.
			s.log.WithFields(logrus.Fields{
				"property_id": property.ID,
				"owner_id":    *property.CurrentOwnerID,
			}).Warn("no open ownership record to close")
		}
	}

	if newOwnerID != nil {
		var owner models.Client
		if err := tx.First(&owner, *newOwnerID).Error; err != nil {
			return err
		}
		if !owner.IsOwner() {
			return ErrNotAnOwner
		}
		if !owner.Active {
			return ErrClientInactive
		}
		record := &models.OwnershipRecord{
			PropertyID: property.ID,
			OwnerID:    owner.ID,
			StartDate:  changeDate,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
	}

	property.CurrentOwnerID = newOwnerID
	if err := tx.Model(property).Update("current_owner_id", newOwnerID).Error; err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"property_id": property.ID, "new_owner_id": newOwnerID}).Info("property owner changed")
	return nil
}

func (s *PropertyService) Get(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.Preload("CurrentOwner").First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) List() ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Preload("CurrentOwner").Order("code").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// OwnershipHistory returns a property's ownership intervals, newest first.
func (s *PropertyService) OwnershipHistory(propertyID uint) ([]models.OwnershipRecord, error) {
	var records []models.OwnershipRecord
	err := s.db.Preload("Owner").
		Where("property_id = ?", propertyID).
		Order("start_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a property. Ownership history cascades away with it;
// agreements block the delete as a protected error.
func (s *PropertyService) Delete(id uint) error {
	return s.db.Unscoped().Delete(&models.Property{}, id).Error
}
