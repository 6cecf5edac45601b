package migrations

import (
	"github.com/Rakhulsr/cristobal/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSize{},
		&models.Address{},
		&models.PaymentMethod{},
		&models.Order{},
		&models.OrderItem{},
	)
}
