package models

type Address struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"size:100" json:"title"`
	FullAddress string `gorm:"type:text" json:"full_address"`
	City        string `gorm:"size:100" json:"city"`
	District    string `gorm:"size:100" json:"district"`
	Phone       string `gorm:"size:20" json:"phone"`
}
