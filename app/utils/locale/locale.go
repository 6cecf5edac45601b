package locale

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	Turkish = "tr"
	English = "en"
)

var Supported = []string{Turkish, English}

// Normalize returns the supported language code for lang, or "" when lang is
// not one we ship translations for.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, s := range Supported {
		if s == lang {
			return s
		}
	}
	return ""
}

// LoadTranslations reads <dir>/<lang>.json. A missing file is not an error;
// the client falls back to its built-in strings.
func LoadTranslations(dir, lang string) (map[string]interface{}, error) {
	if Normalize(lang) == "" {
		return map[string]interface{}{}, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, lang+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("failed to read translations for %s: %w", lang, err)
	}

	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse translations for %s: %w", lang, err)
	}
	return out, nil
}
