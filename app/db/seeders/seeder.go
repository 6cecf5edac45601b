package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/cristobal/app/repositories"
	"gorm.io/gorm"
)

const (
	AdminUsername = "Admin"
	AdminEmail    = "admin@cristobal.com"

	seedAdminPassword  = "admin123"
	resetAdminPassword = "admin"
)

// DBSeed makes sure an admin account exists and replaces the catalog with the
// demo products.
func DBSeed(ctx context.Context, db *gorm.DB) error {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)

	if err := seedAdmin(ctx, userRepo); err != nil {
		return err
	}

	if err := productRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog before seeding: %w", err)
	}
	for _, product := range DemoProducts() {
		p := product
		if err := productRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.NameTR, err)
		}
	}
	log.Printf("DBSeed: seeded %d demo products", len(DemoProducts()))
	return nil
}

// seedAdmin leaves an existing admin account alone.
func seedAdmin(ctx context.Context, userRepo repositories.UserRepositoryImpl) error {
	existing, err := userRepo.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	created, err := userRepo.EnsureAdmin(ctx, AdminUsername, AdminEmail, seedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		log.Printf("DBSeed: admin user %s seeded", AdminEmail)
	}
	return nil
}

// ResetAdmin recreates the admin account or resets its password to the
// default.
func ResetAdmin(ctx context.Context, db *gorm.DB) (created bool, err error) {
	return repositories.NewUserRepository(db).EnsureAdmin(ctx, AdminUsername, AdminEmail, resetAdminPassword)
}
