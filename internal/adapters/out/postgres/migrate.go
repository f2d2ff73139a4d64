package postgres

import (
	"gorm.io/gorm"

	"fleetops/internal/adapters/out/postgres/deliveryrepo"
	"fleetops/internal/adapters/out/postgres/userrepo"
	"fleetops/internal/adapters/out/postgres/vehiclerepo"
	"fleetops/internal/adapters/out/postgres/walletrepo"
)

// Migrate creates or updates the schema for every persisted aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.StatusUpdateDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&userrepo.UserDTO{},
		&vehiclerepo.VehicleDTO{},
	)
}
