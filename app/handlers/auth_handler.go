package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type RegisterForm struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	var form RegisterForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("RegisterPostHandler: Error parsing body: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Tüm alanları doldurun."})
		return
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		errs := map[string]string{}
		if errors.As(err, &validationErrors) {
			errs = helpers.FormatValidationErrors(validationErrors)
		}
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Tüm alanları doldurun.",
			"errors": errs,
		})
		return
	}
	if len(form.Password) > helpers.MaxPasswordBytes {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Şifre çok uzun.",
			"errors": map[string]string{"password": "Şifre çok uzun."},
		})
		return
	}

	user := &models.User{Username: form.Username, Email: form.Email, Password: form.Password}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Bu email adresi zaten kullanımda."})
			return
		}
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Şifre çok uzun."})
			return
		}
		log.Printf("RegisterPostHandler: Failed to create user %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Kayıt sırasında bir hata oluştu."})
		return
	}

	log.Printf("RegisterPostHandler: user %d registered (%s)", user.ID, user.Email)
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "redirectUrl": "/auth/login"})
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("LoginPostHandler: Error parsing body: %v", err)
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Hatalı email veya şifre."})
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		log.Printf("LoginPostHandler: Error getting user by email '%s': %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sistem hatası."})
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(form.Password)) {
		log.Printf("LoginPostHandler: rejected login for email: %s", form.Email)
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Hatalı email veya şifre."})
		return
	}

	if err := h.sessionStore.SetUser(w, r, user.ToSessionUser()); err != nil {
		log.Printf("LoginPostHandler: Error setting user session: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sistem hatası."})
		return
	}

	redirectURL := "/"
	if user.IsAdmin() {
		redirectURL = "/admin"
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "redirectUrl": redirectURL})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutHandler: Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
