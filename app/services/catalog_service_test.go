package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Rakhulsr/cristobal/app/db/dbtest"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryDisk() *memoryDisk {
	return &memoryDisk{files: map[string][]byte{}}
}

func (d *memoryDisk) Put(_ context.Context, name string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[name] = b
	return nil
}

func (d *memoryDisk) Delete(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, name)
	return nil
}

func (d *memoryDisk) URL(name string) string { return "/images/" + name }

// uploads builds real multipart file headers for field -> filenames.
func uploads(t *testing.T, files map[string][]string) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, names := range files {
		for _, name := range names {
			w, err := mw.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = w.Write([]byte("img:" + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))
	return req.MultipartForm
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes(`[{"size":"48","stock":3},{"size":"50","stock":"2"}]`)
	require.NoError(t, err)
	assert.Equal(t, []models.ProductSize{{Size: "48", Stock: 3}, {Size: "50", Stock: 2}}, sizes)

	sizes, err = ParseSizes("  ")
	require.NoError(t, err)
	assert.Nil(t, sizes)

	sizes, err = ParseSizes("[]")
	require.NoError(t, err)
	assert.NotNil(t, sizes)
	assert.Empty(t, sizes)

	_, err = ParseSizes("not json")
	assert.ErrorIs(t, err, ErrInvalidSizes)

	_, err = ParseSizes(`[{"size":"","stock":1}]`)
	assert.ErrorIs(t, err, ErrInvalidSizes)
}

func TestCatalogService_CreateStoresUploads(t *testing.T) {
	db := dbtest.Open(t)
	disk := newMemoryDisk()
	repo := repositories.NewProductRepository(db)
	svc := NewCatalogService(repo, disk)

	form := uploads(t, map[string][]string{
		"cover_image": {"Cover.JPG"},
		"images":      {"a.png", "b.webp"},
	})

	product, err := svc.Create(context.Background(), ProductDraft{
		NameTR:   "Yün Kaban",
		NameEN:   "Wool Coat",
		Price:    decimal.NewFromInt(8500),
		Category: "Kaban",
		Stock:    10,
		Sizes:    []models.ProductSize{{Size: "48", Stock: 2}},
	}, form.File["cover_image"][0], form.File["images"])
	require.NoError(t, err)

	assert.Len(t, disk.files, 3)
	assert.True(t, strings.HasPrefix(product.CoverImageURL, "/images/"))
	assert.True(t, strings.HasSuffix(product.CoverImageURL, ".jpg"))

	stored, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Images, 2)
	assert.Len(t, stored.Sizes, 1)
	assert.Len(t, stored.ImageURLs(), 3)
}

func TestCatalogService_UpdateAndDelete(t *testing.T) {
	db := dbtest.Open(t)
	disk := newMemoryDisk()
	repo := repositories.NewProductRepository(db)
	svc := NewCatalogService(repo, disk)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductDraft{NameTR: "Yelek", Price: decimal.NewFromInt(100)}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, disk.files)

	cover := uploads(t, map[string][]string{"cover_image": {"new.jpg"}})
	require.NoError(t, svc.Update(ctx, product.ID, ProductDraft{
		NameTR: "Şişme Yelek",
		Price:  decimal.NewFromInt(150),
		Sizes:  []models.ProductSize{{Size: "M", Stock: 4}},
	}, cover.File["cover_image"][0]))

	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Şişme Yelek", stored.NameTR)
	assert.NotEmpty(t, stored.CoverImageURL)
	require.Len(t, stored.Sizes, 1)

	assert.ErrorIs(t, svc.Update(ctx, 9999, ProductDraft{NameTR: "x"}, nil), ErrProductNotFound)

	require.NoError(t, svc.Delete(ctx, product.ID))
	assert.ErrorIs(t, svc.Delete(ctx, product.ID), ErrProductNotFound)
}
