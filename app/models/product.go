package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	NameTR        string          `gorm:"column:name_tr;size:255" json:"name_tr"`
	NameEN        string          `gorm:"column:name_en;size:255" json:"name_en"`
	DescriptionTR string          `gorm:"column:description_tr;type:text" json:"description_tr"`
	DescriptionEN string          `gorm:"column:description_en;type:text" json:"description_en"`
	FabricInfo    string          `gorm:"type:text" json:"fabric_info"`
	ReturnInfo    string          `gorm:"type:text" json:"return_info"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Category      string          `gorm:"size:100;index" json:"category"`
	CoverImageURL string          `gorm:"column:cover_image_url;size:255" json:"cover_image_url"`
	Stock         int             `gorm:"default:10" json:"stock"`
	Images        []ProductImage  `gorm:"foreignKey:ProductID" json:"-"`
	Sizes         []ProductSize   `gorm:"foreignKey:ProductID" json:"sizes"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"column:image_url;size:255" json:"image_url"`
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Size      string `gorm:"size:20" json:"size"`
	Stock     int    `gorm:"default:0" json:"stock"`
}

// Name picks the product name for lang, falling back to Turkish.
func (p *Product) Name(lang string) string {
	if lang == "en" && p.NameEN != "" {
		return p.NameEN
	}
	return p.NameTR
}

// ImageURLs returns the cover image first, followed by the gallery.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images)+1)
	if p.CoverImageURL != "" {
		urls = append(urls, p.CoverImageURL)
	}
	for _, img := range p.Images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}
