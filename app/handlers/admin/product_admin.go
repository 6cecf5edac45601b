package admin

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type ProductForm struct {
	NameTR        string             `json:"name_tr" validate:"required,max=255"`
	NameEN        string             `json:"name_en" validate:"max=255"`
	DescriptionTR string             `json:"description_tr"`
	DescriptionEN string             `json:"description_en"`
	FabricInfo    string             `json:"fabric_info"`
	ReturnInfo    string             `json:"return_info"`
	Price         helpers.FlexString `json:"price" validate:"required"`
	Category      string             `json:"category" validate:"max=100"`
	Stock         helpers.FlexString `json:"stock"`
	Sizes         string             `json:"sizes"`
}

// draft validates the form and converts it for the catalog service.
// The returned map is non-nil when validation failed.
func (h *AdminHandler) draft(form *ProductForm) (services.ProductDraft, map[string]string) {
	form.NameTR = strings.TrimSpace(form.NameTR)

	if err := h.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return services.ProductDraft{}, helpers.FormatValidationErrors(validationErrors)
		}
		return services.ProductDraft{}, map[string]string{"form": err.Error()}
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(form.Price.String(), ",", "."))
	if err != nil || price.IsNegative() {
		return services.ProductDraft{}, map[string]string{"price": "Fiyat geçerli bir sayı olmalıdır."}
	}

	stock := 0
	if form.Stock.String() != "" {
		stock, err = form.Stock.Int()
		if err != nil || stock < 0 {
			return services.ProductDraft{}, map[string]string{"stock": "Stok geçerli bir sayı olmalıdır."}
		}
	}

	sizes, err := services.ParseSizes(form.Sizes)
	if err != nil {
		return services.ProductDraft{}, map[string]string{"sizes": err.Error()}
	}

	return services.ProductDraft{
		NameTR:        form.NameTR,
		NameEN:        strings.TrimSpace(form.NameEN),
		DescriptionTR: form.DescriptionTR,
		DescriptionEN: form.DescriptionEN,
		FabricInfo:    form.FabricInfo,
		ReturnInfo:    form.ReturnInfo,
		Price:         price,
		Category:      strings.TrimSpace(form.Category),
		Stock:         stock,
		Sizes:         sizes,
	}, nil
}

func uploadedFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

func firstUpload(r *http.Request, field string) *multipart.FileHeader {
	if files := uploadedFiles(r, field); len(files) > 0 {
		return files[0]
	}
	return nil
}

// AddProductPost accepts a multipart form with cover_image, images[] and a
// JSON sizes field.
func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("AddProductPost: Error parsing form: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Form okunamadı."})
		return
	}

	draft, errs := h.draft(&form)
	if errs != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Eksik veya hatalı bilgi.", "errors": errs})
		return
	}

	product, err := h.catalogSvc.Create(r.Context(), draft, firstUpload(r, "cover_image"), uploadedFiles(r, "images"))
	if err != nil {
		log.Printf("AddProductPost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Veritabanı hatası"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Ürün eklendi.", "id": product.ID})
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz ürün."})
		return
	}

	var form ProductForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("EditProductPost: Error parsing form: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Form okunamadı."})
		return
	}

	draft, errs := h.draft(&form)
	if errs != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Eksik veya hatalı bilgi.", "errors": errs})
		return
	}

	if err := h.catalogSvc.Update(r.Context(), id, draft, firstUpload(r, "cover_image")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Ürün bulunamadı."})
			return
		}
		log.Printf("EditProductPost: product %d: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Hata."})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteProductPost removes the product along with its sizes, images and
// every order line that references it.
func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz ürün."})
		return
	}

	if err := h.catalogSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Ürün bulunamadı."})
			return
		}
		log.Printf("DeleteProductPost: product %d: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Silme Hatası: " + err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Ürün ve tüm geçmiş verileri kalıcı olarak silindi."})
}
