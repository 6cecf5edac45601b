package configs

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// KeyPairs returns the keys in the order gorilla/sessions expects them.
func (k *SessionKeys) KeyPairs() [][]byte {
	if len(k.EncKey) == 0 {
		return [][]byte{k.AuthKey}
	}
	return [][]byte{k.AuthKey, k.EncKey}
}

// LoadSessionKeys decodes APP_AUTH_KEY/APP_ENC_KEY. When neither is set the
// plain SESSION_KEY is used as a signing-only key.
func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" && env.AppEncKey == "" {
		if env.SessionKey == "" {
			return nil, fmt.Errorf("neither APP_AUTH_KEY nor SESSION_KEY is set")
		}
		if env.IsProduction() {
			log.Println("Warning: running in production with SESSION_KEY only; session cookies are signed but not encrypted")
		}
		return &SessionKeys{AuthKey: []byte(env.SessionKey)}, nil
	}

	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

func GenerateAndPrintSessionKeys(envFilePath string) error {
	fmt.Println("Generating new session keys...")

	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("error: could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("error: could not generate encryption key")
	}

	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return fmt.Errorf("error: could not generate csrf key")
	}

	authKeyBase64 := base64.URLEncoding.EncodeToString(authKey)
	encKeyBase64 := base64.URLEncoding.EncodeToString(encKey)
	csrfKeyBase64 := base64.URLEncoding.EncodeToString(csrfKey)

	fmt.Println("\n================================================")
	fmt.Println("Generated keys:")
	fmt.Printf("APP_AUTH_KEY=%s\n", authKeyBase64)
	fmt.Printf("APP_ENC_KEY=%s\n", encKeyBase64)
	fmt.Printf("CSRF_KEY=%s\n", csrfKeyBase64)
	fmt.Println("================================================")

	fullPath, err := filepath.Abs(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", envFilePath, err)
	}

	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nCSRF_KEY=%s\n", authKeyBase64, encKeyBase64, csrfKeyBase64)
	if err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Printf("\n✅ Keys have been written to '%s'.\n", fullPath)
	fmt.Println("Please copy these lines from that file into your actual .env file.")
	fmt.Println("If you regenerate, existing user sessions will be invalidated.")

	return nil
}
