package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	Category string
	Query    string
}

// ProductUpdate carries the editable product fields. A nil Sizes leaves the
// existing sizes untouched; a non-nil one replaces them.
type ProductUpdate struct {
	NameTR        string
	NameEN        string
	DescriptionTR string
	DescriptionEN string
	FabricInfo    string
	ReturnInfo    string
	Price         decimal.Decimal
	Category      string
	Stock         int
	CoverImageURL string
	Sizes         []models.ProductSize
}

type ProductRepositoryImpl interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Latest(ctx context.Context, limit int) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetForOrder(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, update ProductUpdate) error
	Delete(ctx context.Context, id uint) error
	ListWithDetails(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product

	query := p.db.WithContext(ctx).Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword := strings.TrimSpace(filter.Query); keyword != "" {
		searchKeyword := "%" + keyword + "%"
		query = query.Where("name_tr LIKE ? OR name_en LIKE ?", searchKeyword, searchKeyword)
	}

	if err := query.Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (p *productRepository) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// lockForOrder takes a shared row lock so the price read during checkout
// cannot change before the transaction commits. sqlite ignores it.
func lockForOrder(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthShare})
}

// GetForOrder reads the product row without associations, locked until the
// surrounding transaction ends.
func (p *productRepository) GetForOrder(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := lockForOrder(p.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create inserts the product together with its Images and Sizes.
func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := p.db.WithContext(ctx).Create(product).Error; err != nil {
		log.Printf("ProductRepository.Create: failed to insert %q: %v", product.NameTR, err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (p *productRepository) Update(ctx context.Context, id uint, update ProductUpdate) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"name_tr":        update.NameTR,
			"name_en":        update.NameEN,
			"description_tr": update.DescriptionTR,
			"description_en": update.DescriptionEN,
			"fabric_info":    update.FabricInfo,
			"return_info":    update.ReturnInfo,
			"price":          update.Price,
			"category":       update.Category,
			"stock":          update.Stock,
		}
		if update.CoverImageURL != "" {
			fields["cover_image_url"] = update.CoverImageURL
		}

		result := tx.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return fmt.Errorf("failed to update product %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			// mysql reports unchanged rows as unaffected
			var exists int64
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if update.Sizes == nil {
			return nil
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return fmt.Errorf("failed to clear sizes for product %d: %w", id, err)
		}
		if len(update.Sizes) == 0 {
			return nil
		}

		sizes := make([]models.ProductSize, len(update.Sizes))
		for i, s := range update.Sizes {
			sizes[i] = models.ProductSize{ProductID: id, Size: s.Size, Stock: s.Stock}
		}
		if err := tx.Create(&sizes).Error; err != nil {
			return fmt.Errorf("failed to insert sizes for product %d: %w", id, err)
		}
		return nil
	})
}

// Delete removes the product and everything that references it, in one
// transaction: order items, sizes, images, then the product row.
func (p *productRepository) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items of product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return fmt.Errorf("failed to delete sizes of product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete images of product %d: %w", id, err)
		}

		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListWithDetails loads every product with its gallery and sizes for the
// admin dashboard.
func (p *productRepository) ListWithDetails(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products with details: %w", err)
	}
	return products, nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// DeleteAll wipes the catalog, including order items that point at it.
func (p *productRepository) DeleteAll(ctx context.Context) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.OrderItem{}, &models.ProductSize{}, &models.ProductImage{}, &models.Product{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to wipe catalog: %w", err)
			}
		}
		return nil
	})
}
