package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/cristobal/app/configs"
	"github.com/Rakhulsr/cristobal/app/middlewares"
	"github.com/Rakhulsr/cristobal/app/routes"
	"github.com/Rakhulsr/cristobal/app/utils/renderer"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/Rakhulsr/cristobal/app/utils/storage"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the storefront until ctx is cancelled or the process receives
// SIGINT/SIGTERM.
func Serve(ctx context.Context, env configs.ENV) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openMigrated(env)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	log.Println("✅ Database connected.")

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	sessionStore := sessions.NewCookieSessionStore(env.CookieSecure, keys.KeyPairs()...)
	log.Println("✅ Session store initialized.")

	disk, err := storage.New(ctx, storage.Config{
		Disk:       env.StorageDisk,
		PublicDir:  env.PublicDir,
		URLPrefix:  "/images",
		S3Bucket:   env.S3Bucket,
		S3Region:   env.S3Region,
		S3Key:      env.S3Key,
		S3Secret:   env.S3Secret,
		S3Endpoint: env.S3Endpoint,
		S3URL:      env.S3URL,
	})
	if err != nil {
		return err
	}

	csrfKey, err := decodeCSRFKey(env.CSRFKey)
	if err != nil {
		return err
	}
	if csrfKey == nil {
		log.Println("Warning: CSRF_KEY not set, CSRF protection disabled")
	}

	router := routes.NewRouter(db, routes.Options{
		Render:       renderer.New(env.ViewsDir, !env.IsProduction()),
		SessionStore: sessionStore,
		Disk:         disk,
		Metrics:      middlewares.NewMetrics(),
		ShippingFee:  env.ShippingFee,
		DefaultLang:  env.DefaultLang,
		PublicDir:    env.PublicDir,
		LocalesDir:   env.LocalesDir,
		CSRFKey:      csrfKey,
		CookieSecure: env.CookieSecure,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// decodeCSRFKey accepts the base64 form written by generate-keys. gorilla/csrf
// needs exactly 32 bytes.
func decodeCSRFKey(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	key, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("CSRF_KEY has invalid length %d after decoding, must be 32 bytes", len(key))
	}
	return key, nil
}
