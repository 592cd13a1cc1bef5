package database

import (
	"fieldrep/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the postgres record store and migrates its tables.
func NewConnection(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.Product{},
		&model.OrderRequest{},
		&model.DoctorEntry{},
		&model.UtilityRequest{},
		&model.AuditLog{},
	)
	if err != nil {
		log.WithError(err).Warn("failed to auto-migrate models")
	}

	return db, nil
}
