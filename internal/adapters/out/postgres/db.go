package postgres

import (
	"fmt"

	"oliveflow/internal/adapters/out/postgres/facilityrepo"
	"oliveflow/internal/adapters/out/postgres/goodrepo"
	"oliveflow/internal/adapters/out/postgres/outboxrepo"
	"oliveflow/internal/adapters/out/postgres/servicerepo"
	"oliveflow/internal/adapters/out/postgres/traderepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a lib/pq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects GORM through the lib/pq driver, so that driver errors reach
// the repositories as *pq.Error.
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(
		gormpostgres.New(gormpostgres.Config{DriverName: "postgres", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(level)},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&facilityrepo.MillDTO{},
		&facilityrepo.GroveDTO{},
		&facilityrepo.MachineDTO{},
		&facilityrepo.StorageAreaDTO{},
		&goodrepo.HarvestDTO{},
		&goodrepo.PurchasedOliveDTO{},
		&goodrepo.OilProductDTO{},
		&traderepo.NeedDTO{},
		&traderepo.OfferDTO{},
		&traderepo.RequestDTO{},
		&servicerepo.RequestDTO{},
		&servicerepo.OfferDTO{},
		&servicerepo.OperationDTO{},
		&outboxrepo.EventDTO{},
	)
}
