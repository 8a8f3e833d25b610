package models

import (
	"time"

	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyHouse     PropertyType = "HOUSE"
	PropertyApartment PropertyType = "APT"
	PropertyOffice    PropertyType = "OFC"
	PropertyLand      PropertyType = "LAND"
)

type OfferType string

const (
	OfferRent OfferType = "RENT"
	OfferSale OfferType = "SALE"
)

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVL"
	PropertyReserved  PropertyStatus = "RSV"
	PropertyRented    PropertyStatus = "RNT"
	PropertySold      PropertyStatus = "SLD"
)

// Property is a managed listing. The code is assigned sequentially on
// creation and never changes. CurrentOwnerID mirrors the open ownership
// record; both are written together by the owner-change operation.
type Property struct {
	gorm.Model
	Code           string `gorm:"size:10;uniqueIndex;not null"`
	Address        string `gorm:"size:255;not null"`
	CurrentOwnerID *uint
	CurrentOwner   *Client `gorm:"foreignKey:CurrentOwnerID"`

	Type           PropertyType   `gorm:"size:10;not null;default:HOUSE"`
	OfferType      OfferType      `gorm:"size:4;not null"`
	Status         PropertyStatus `gorm:"size:3;not null;default:AVL"`
	Price          int64          `gorm:"not null"`
	CommonExpenses *int64
	SquareMeters   int
	Bedrooms       int
	Bathrooms      int
	HasParking     bool
	HasStorageUnit bool
	FloorNumber    *int

	Amenities     string
	PetsAllowed   bool
	Requirements  string
	Comments      string
	Description   string
	DatePublished time.Time `gorm:"type:date"`
}
