package models

var ModelTypeRegistry = map[string]interface{}{
	"Client":          Client{},
	"Property":        Property{},
	"OwnershipRecord": OwnershipRecord{},
	"RentalAgreement": RentalAgreement{},
	"MonthlyRental":   MonthlyRental{},
}

// All returns the models in dependency order for schema migration.
func All() []interface{} {
	return []interface{}{
		&Client{},
		&Property{},
		&OwnershipRecord{},
		&RentalAgreement{},
		&MonthlyRental{},
	}
}
