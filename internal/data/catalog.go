package data

import (
	"context"
	"errors"
	"fmt"

	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when no product exists with the given ID.
var ErrProductNotFound = errors.New("catalog: product not found")

// productRow is the GORM model for the products table.
type productRow struct {
	ID          string   `gorm:"primaryKey;column:id;size:64"`
	Title       string   `gorm:"column:title;size:255;not null"`
	Price       float64  `gorm:"column:price;not null"`
	SamplePrice *float64 `gorm:"column:sample_price"`
	Image       string   `gorm:"column:image;size:512"`
	ProductType string   `gorm:"column:product_type;type:enum('physical','digital','service');not null"`
	SupplierID  string   `gorm:"column:supplier_id;size:64;index"`
}

// TableName overrides the GORM table name.
func (productRow) TableName() string {
	return "products"
}

// toModel converts a database row to the domain product.
func (p productRow) toModel() *model.Product {
	return &model.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		SamplePrice: p.SamplePrice,
		Image:       p.Image,
		ProductType: model.ProductType(p.ProductType),
		SupplierID:  p.SupplierID,
	}
}

// CatalogRepo implements biz.CatalogRepo against MySQL.
type CatalogRepo struct {
	db     *gorm.DB
	logger *log.Helper
}

// NewCatalogRepo creates a new catalog repository.
func NewCatalogRepo(db *gorm.DB, logger log.Logger) *CatalogRepo {
	return &CatalogRepo{
		db:     db,
		logger: log.NewHelper(logger),
	}
}

// GetProduct fetches a single product by ID.
func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog: failed to get product %s: %w", id, err)
	}
	return row.toModel(), nil
}

// ListProducts returns a page of products, optionally filtered by supplier.
func (r *CatalogRepo) ListProducts(ctx context.Context, supplierID string, offset, limit int) ([]*model.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Model(&productRow{})
	if supplierID != "" {
		q = q.Where("supplier_id = ?", supplierID)
	}

	var rows []productRow
	if err := q.Order("id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("catalog: failed to list products: %w", err)
	}

	products := make([]*model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}
