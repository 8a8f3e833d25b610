package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-manager/internal/logging"
	"rental-manager/internal/manage"
	"rental-manager/internal/models"
)

// SeedCmd loads a small demo data set through the regular services, so every
// invariant and side effect (codes, ownership history, first ledger entry)
// applies to it as well.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := getDB()
			if err != nil {
				return err
			}
			log := logging.Logger
			clients := manage.NewClientService(gdb, log)
			properties := manage.NewPropertyService(gdb, log)
			ledger := manage.NewLedgerService(gdb, log)
			agreements := manage.NewAgreementService(gdb, log, ledger)

			owner, err := clients.Create(manage.CreateClientInput{
				Name:  "Carmen Rojas",
				Email: "carmen.rojas@example.com",
				Phone: "+56911111111",
				Role:  models.RoleOwner,
			})
			if err != nil {
				return err
			}
			tenant, err := clients.Create(manage.CreateClientInput{
				Name:  "Pablo Fuentes",
				Email: "pablo.fuentes@example.com",
				Phone: "+56922222222",
				Role:  models.RoleTenant,
			})
			if err != nil {
				return err
			}

			floor := 7
			property, err := properties.Create(manage.CreatePropertyInput{
				PropertyFields: manage.PropertyFields{
					Address:       "Av. Providencia 1234, depto 701",
					Type:          models.PropertyApartment,
					OfferType:     models.OfferRent,
					Status:        models.PropertyAvailable,
					Price:         500000,
					SquareMeters:  62,
					Bedrooms:      2,
					Bathrooms:     1,
					HasParking:    true,
					FloorNumber:   &floor,
					Description:   "Two-bedroom apartment near Los Leones metro station.",
					DatePublished: time.Now(),
				},
				OwnerID: &owner.ID,
			})
			if err != nil {
				return err
			}

			agreement, err := agreements.Create(manage.CreateAgreementInput{
				PropertyID:       property.ID,
				OwnerID:          owner.ID,
				TenantID:         tenant.ID,
				RentAmount:       500000,
				CommissionAmount: 50000,
				StartDate:        time.Now(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Seeded property %s with agreement %d\n", property.Code, agreement.ID)
			return nil
		},
	}
}
