package database

import (
	"context"
	"fmt"

	"fieldrep/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DevCatalog is the product list a fresh development store starts with.
func DevCatalog() []model.Product {
	p := func(id, sku, name, price, pts, ptr string) model.Product {
		return model.Product{
			ID:    id,
			SKU:   sku,
			Name:  name,
			Price: decimal.RequireFromString(price),
			PTS:   decimal.RequireFromString(pts),
			PTR:   decimal.RequireFromString(ptr),
		}
	}
	return []model.Product{
		p("P1", "PCM-500", "Paracetamol 500mg (10 tabs)", "100", "90", "95"),
		p("P2", "AZI-250", "Azithromycin 250mg (6 tabs)", "118.50", "98", "106.65"),
		p("P3", "CET-10", "Cetirizine 10mg (10 tabs)", "22", "17.60", "19.80"),
		p("P4", "PAN-40", "Pantoprazole 40mg (15 tabs)", "145", "116", "130.50"),
		p("P5", "ORS-21", "ORS Sachet 21g", "21", "16.80", "18.90"),
	}
}

// SeedCatalog inserts products when the catalog table is empty.
func SeedCatalog(ctx context.Context, db *gorm.DB, products []model.Product, log *logrus.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.WithField("products", count).Debug("catalog already seeded, skipping")
		return nil
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.WithField("products", len(products)).Info("catalog seeded")
	return nil
}
