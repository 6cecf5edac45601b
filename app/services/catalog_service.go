package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/utils/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidSizes = errors.New("sizes must be a JSON array of {size, stock}")

// ProductDraft is an admin-submitted product. Sizes is nil when the form
// carried no sizes field.
type ProductDraft struct {
	NameTR        string
	NameEN        string
	DescriptionTR string
	DescriptionEN string
	FabricInfo    string
	ReturnInfo    string
	Price         decimal.Decimal
	Category      string
	Stock         int
	Sizes         []models.ProductSize
}

type CatalogService struct {
	productRepo repositories.ProductRepositoryImpl
	disk        storage.Disk
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, disk storage.Disk) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		disk:        disk,
	}
}

// ParseSizes decodes the admin form's sizes field. An empty string means
// "not provided" and yields nil.
func ParseSizes(raw string) ([]models.ProductSize, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var entries []struct {
		Size  string          `json:"size"`
		Stock json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSizes, err)
	}

	sizes := make([]models.ProductSize, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Size) == "" {
			return nil, fmt.Errorf("%w: empty size label", ErrInvalidSizes)
		}
		stock, err := decodeStock(e.Stock)
		if err != nil {
			return nil, fmt.Errorf("%w: size %s: %v", ErrInvalidSizes, e.Size, err)
		}
		sizes = append(sizes, models.ProductSize{Size: strings.TrimSpace(e.Size), Stock: stock})
	}
	return sizes, nil
}

// decodeStock accepts both 5 and "5", since the admin form posts either.
func decodeStock(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

func (s *CatalogService) Create(ctx context.Context, draft ProductDraft, cover *multipart.FileHeader, gallery []*multipart.FileHeader) (*models.Product, error) {
	var stored []string
	cleanup := func() {
		for _, name := range stored {
			if err := s.disk.Delete(ctx, name); err != nil {
				log.Printf("CatalogService.Create: failed to remove orphaned upload %s: %v", name, err)
			}
		}
	}

	product := &models.Product{
		NameTR:        draft.NameTR,
		NameEN:        draft.NameEN,
		DescriptionTR: draft.DescriptionTR,
		DescriptionEN: draft.DescriptionEN,
		FabricInfo:    draft.FabricInfo,
		ReturnInfo:    draft.ReturnInfo,
		Price:         draft.Price,
		Category:      draft.Category,
		Stock:         draft.Stock,
		Sizes:         draft.Sizes,
	}

	if cover != nil {
		name, err := s.upload(ctx, cover)
		if err != nil {
			return nil, err
		}
		stored = append(stored, name)
		product.CoverImageURL = s.disk.URL(name)
	}

	for _, fh := range gallery {
		name, err := s.upload(ctx, fh)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, name)
		product.Images = append(product.Images, models.ProductImage{ImageURL: s.disk.URL(name)})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		cleanup()
		return nil, err
	}

	log.Printf("CatalogService.Create: product %d created with %d images and %d sizes", product.ID, len(product.Images), len(product.Sizes))
	return product, nil
}

// Update edits the product fields. A new cover replaces the old URL; sizes
// are replaced only when draft.Sizes is non-nil.
func (s *CatalogService) Update(ctx context.Context, id uint, draft ProductDraft, cover *multipart.FileHeader) error {
	update := repositories.ProductUpdate{
		NameTR:        draft.NameTR,
		NameEN:        draft.NameEN,
		DescriptionTR: draft.DescriptionTR,
		DescriptionEN: draft.DescriptionEN,
		FabricInfo:    draft.FabricInfo,
		ReturnInfo:    draft.ReturnInfo,
		Price:         draft.Price,
		Category:      draft.Category,
		Stock:         draft.Stock,
		Sizes:         draft.Sizes,
	}

	var uploaded string
	if cover != nil {
		name, err := s.upload(ctx, cover)
		if err != nil {
			return err
		}
		uploaded = name
		update.CoverImageURL = s.disk.URL(name)
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		if uploaded != "" {
			_ = s.disk.Delete(ctx, uploaded)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	log.Printf("CatalogService.Delete: product %d and its history removed", id)
	return nil
}

func (s *CatalogService) upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	name := storage.UniqueName(fh.Filename)
	if err := s.disk.Put(ctx, name, f); err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", fh.Filename, err)
	}
	return name, nil
}
