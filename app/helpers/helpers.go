package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUser  contextKey = "sessionUser"
	ContextKeyLang  contextKey = "lang"
	CartCountKey    contextKey = "cart_count"
	maxBodyBytes               = 1 << 20
	maxUploadMemory            = 32 << 20
)

func WithUser(ctx context.Context, user *models.SessionUser) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// CurrentUser returns the logged-in user placed on the request by the
// session middleware, or nil.
func CurrentUser(r *http.Request) *models.SessionUser {
	user, _ := r.Context().Value(ContextKeyUser).(*models.SessionUser)
	return user
}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ContextKeyLang, lang)
}

func Lang(r *http.Request) string {
	lang, _ := r.Context().Value(ContextKeyLang).(string)
	return lang
}

func WithCartCount(ctx context.Context, count int) context.Context {
	return context.WithValue(ctx, CartCountKey, count)
}

func CartCount(r *http.Request) int {
	count, _ := r.Context().Value(CartCountKey).(int)
	return count
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s zorunludur.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s geçerli bir e-posta adresi olmalıdır.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s sayı olmalıdır.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s en az %s karakter/değer olmalıdır.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s en fazla %s karakter/değer olmalıdır.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s alanı %s kuralını sağlamıyor.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// FlexString accepts either a JSON string or a JSON number, so payload
// structs decode the same from fetch() JSON bodies and HTML forms.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }

func (f FlexString) Int() (int, error) {
	return strconv.Atoi(f.String())
}

func (f FlexString) Uint() (uint, error) {
	n, err := strconv.ParseUint(f.String(), 10, 64)
	return uint(n), err
}

// Bind decodes a JSON, urlencoded or multipart body into dst using dst's
// json tags.
func Bind(r *http.Request, dst interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("invalid JSON body: %w", err)
		}
		return nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return fmt.Errorf("invalid multipart body: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form body: %w", err)
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// ParseID reads a positive numeric route or body identifier.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(n), nil
}
