package repository

import (
	"context"
	"errors"

	"fieldrep/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository reads the product catalog. The catalog is shared by
// all owners and is never written here.
type CatalogRepository interface {
	Products(ctx context.Context) ([]model.Product, error)
	ProductByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&products).Error; err != nil {
		return nil, remoteErr("fetch", "product", err)
	}
	return products, nil
}

func (r *catalogRepository) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, remoteErr("fetch", "product", err)
	}
	return &product, nil
}

func (r *catalogRepository) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, remoteErr("count", "product", err)
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, remoteErr("fetch", "product", err)
	}

	return products, total, nil
}
