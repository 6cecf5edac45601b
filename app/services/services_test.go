package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testShippingFee = decimal.NewFromInt(300)

type fixture struct {
	user    *models.User
	address *models.Address
	card    *models.PaymentMethod
	coat    *models.Product
	jacket  *models.Product
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Username: "ayse", Email: "ayse@example.com", Password: "secret"}
	require.NoError(t, repositories.NewUserRepository(db).Create(ctx, user))

	address := &models.Address{UserID: user.ID, Title: "Ev", FullAddress: "Bağdat Cd. 10", City: "İstanbul"}
	require.NoError(t, repositories.NewGormAddressRepository(db).Create(ctx, address))

	card := &models.PaymentMethod{UserID: user.ID, CardTitle: "Bonus", CardNumberMasked: "4242424242421234"}
	require.NoError(t, repositories.NewGormPaymentMethodRepository(db).Create(ctx, card))

	products := repositories.NewProductRepository(db)
	coat := &models.Product{NameTR: "Yün Kaban", NameEN: "Wool Coat", Price: decimal.NewFromInt(8500), Category: "Kaban"}
	jacket := &models.Product{NameTR: "Deri Ceket", NameEN: "Leather Jacket", Price: decimal.RequireFromString("1250.50"), Category: "Ceket"}
	require.NoError(t, products.Create(ctx, coat))
	require.NoError(t, products.Create(ctx, jacket))

	return fixture{user: user, address: address, card: card, coat: coat, jacket: jacket}
}
