package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** **** **** 4242", MaskCardNumber("4242 4242 4242 4242"))
	assert.Equal(t, "**** **** **** 1234", MaskCardNumber("5555666677771234"))
	assert.Equal(t, "**** **** **** 12", MaskCardNumber("12"))
}

func TestProductImageURLs_CoverFirst(t *testing.T) {
	p := Product{
		CoverImageURL: "/images/cover.jpg",
		Images:        []ProductImage{{ImageURL: "/images/a.jpg"}, {ImageURL: "/images/b.jpg"}},
	}
	assert.Equal(t, []string{"/images/cover.jpg", "/images/a.jpg", "/images/b.jpg"}, p.ImageURLs())

	p.CoverImageURL = ""
	assert.Equal(t, []string{"/images/a.jpg", "/images/b.jpg"}, p.ImageURLs())
}

func TestProductName_FallsBackToTurkish(t *testing.T) {
	p := Product{NameTR: "Kaban", NameEN: "Coat"}
	assert.Equal(t, "Coat", p.Name("en"))
	assert.Equal(t, "Kaban", p.Name("tr"))

	p.NameEN = ""
	assert.Equal(t, "Kaban", p.Name("en"))
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Price: decimal.NewFromInt(8500), Quantity: 3}
	assert.True(t, decimal.NewFromInt(25500).Equal(item.LineTotal()))
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderStatusShipped))
	assert.False(t, IsValidOrderStatus("lost"))
}

func TestModelsLeaveDecimalJSONDefaults(t *testing.T) {
	assert.False(t, decimal.MarshalJSONWithoutQuotes)
}
