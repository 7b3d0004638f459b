package infra

import (
	"fmt"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// and seeds the singleton register-state row if this is a fresh database.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the data seeds the app assumes.
// Exposed separately so integration tests can run it against a scratch DB.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Categoria{},
		&model.Usuario{},
		&model.EstadoCaja{},
		&model.CierreCaja{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Gasto{},
		&model.Socio{},
		&model.MovimientoPuntos{},
		&model.Premio{},
		&model.RegistroLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// The register state is a singleton: seed it closed on first boot so
	// services can always assume the row exists.
	estado := model.EstadoCaja{ID: model.EstadoCajaID}
	if err := db.FirstOrCreate(&estado, model.EstadoCaja{ID: model.EstadoCajaID}).Error; err != nil {
		return fmt.Errorf("seed estado_caja: %w", err)
	}
	return nil
}
