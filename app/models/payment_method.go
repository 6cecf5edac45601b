package models

import "strings"

// PaymentMethod is a masked card; only the last four digits are ever stored.
type PaymentMethod struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	UserID           uint   `gorm:"index;not null" json:"user_id"`
	CardTitle        string `gorm:"size:100" json:"card_title"`
	CardNumberMasked string `gorm:"size:32" json:"card_number_masked"`
	ExpiryDate       string `gorm:"size:10" json:"expiry_date"`
	CardHolderName   string `gorm:"size:100" json:"card_holder_name"`
}

const maskedCardPrefix = "**** **** **** "

// MaskCardNumber keeps the last four characters of the card number.
func MaskCardNumber(cardNumber string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return maskedCardPrefix + digits
}
