package seeders

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/shopspring/decimal"
)

// RecoveryFolders maps image folder names to catalog categories.
var RecoveryFolders = map[string]string{
	"ceketler":  "Ceket",
	"kaban":     "Kaban",
	"sismemont": "Mont",
	"yelekler":  "Yelek",
}

var (
	recoveryImagePattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)
	recoverySizes        = []string{"S", "M", "L", "XL"}
)

const (
	recoveryPrice     = 5000
	recoveryStock     = 10
	recoverySizeStock = 5
)

// RecoverProducts rebuilds catalog entries from imagesDir/<folder>/<product>/
// directories. Every product directory holding at least one image becomes one
// product whose first image (by name) is the cover.
func RecoverProducts(ctx context.Context, productRepo repositories.ProductRepositoryImpl, imagesDir string) (int, error) {
	folders := make([]string, 0, len(RecoveryFolders))
	for folder := range RecoveryFolders {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	recovered := 0
	for _, folder := range folders {
		category := RecoveryFolders[folder]
		entries, err := os.ReadDir(filepath.Join(imagesDir, folder))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return recovered, fmt.Errorf("failed to read %s: %w", folder, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			images, err := imagesIn(filepath.Join(imagesDir, folder, entry.Name()))
			if err != nil {
				return recovered, err
			}
			if len(images) == 0 {
				continue
			}

			product := recoveredProduct(folder, category, entry.Name(), images)
			if err := productRepo.Create(ctx, product); err != nil {
				return recovered, err
			}
			log.Printf("RecoverProducts: recovered %s (ID: %d) with %d images", product.NameTR, product.ID, len(images))
			recovered++
		}
	}
	return recovered, nil
}

func imagesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var images []string
	for _, e := range entries {
		if !e.IsDir() && recoveryImagePattern.MatchString(e.Name()) {
			images = append(images, e.Name())
		}
	}
	return images, nil
}

func recoveredProduct(folder, category, dir string, images []string) *models.Product {
	urls := make([]models.ProductImage, len(images))
	for i, img := range images {
		urls[i] = models.ProductImage{ImageURL: path.Join("/images", folder, dir, img)}
	}
	sizes := make([]models.ProductSize, len(recoverySizes))
	for i, s := range recoverySizes {
		sizes[i] = models.ProductSize{Size: s, Stock: recoverySizeStock}
	}

	return &models.Product{
		NameTR:        category + " - " + dir,
		NameEN:        strings.ToUpper(folder[:1]) + folder[1:] + " - " + dir,
		DescriptionTR: "Otomatik kurtarılan ürün açıklaması.",
		DescriptionEN: "Automatically recovered product description.",
		FabricInfo:    "Standart Kumaş",
		ReturnInfo:    "14 gün iade",
		Price:         decimal.NewFromInt(recoveryPrice),
		Category:      category,
		CoverImageURL: urls[0].ImageURL,
		Stock:         recoveryStock,
		Images:        urls,
		Sizes:         sizes,
	}
}
