package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/Rakhulsr/cristobal/app/configs"
	"github.com/Rakhulsr/cristobal/app/db/seeders"
	"github.com/Rakhulsr/cristobal/app/models/migrations"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func NewApp(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "cristobal",
		Usage: "Cristobal storefront",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					if _, err := openMigrated(env); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Create the admin account and load the demo catalog",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env)
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(ctx, db); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "reset-admin",
				Usage: "Reset the admin password to the default",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env)
					if err != nil {
						return err
					}
					created, err := seeders.ResetAdmin(ctx, db)
					if err != nil {
						return err
					}
					if created {
						log.Printf("✅ Admin user %s created with password 'admin'", seeders.AdminEmail)
					} else {
						log.Printf("✅ Admin password for %s reset to 'admin'", seeders.AdminEmail)
					}
					return nil
				},
			},
			{
				Name:  "recover-products",
				Usage: "Rebuild catalog entries from product image folders",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "images-dir",
						Usage: "directory holding the ceketler/kaban/sismemont/yelekler folders",
						Value: filepath.Join(env.PublicDir, "images"),
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env)
					if err != nil {
						return err
					}
					n, err := seeders.RecoverProducts(ctx, repositories.NewProductRepository(db), c.String("images-dir"))
					if err != nil {
						return err
					}
					log.Printf("✅ Recovery complete, %d products recovered", n)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "file the generated keys are written to",
						Value: ".env.keys",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}
}

func RunCli() {
	env := configs.LoadEnv()
	if err := NewApp(env).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openMigrated(env configs.ENV) (*gorm.DB, error) {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
