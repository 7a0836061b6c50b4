package model

// Item is a stock entry. It belongs to exactly one user.
type Item struct {
	BaseModel
	Nama     string  `gorm:"type:varchar(255);not null" json:"nama"`
	Harga    int64   `gorm:"not null;default:0" json:"harga"`
	Stok     int64   `gorm:"not null;default:0" json:"stok"`
	Kategori string  `gorm:"type:varchar(100)" json:"kategori"`
	Satuan   string  `gorm:"type:varchar(50)" json:"satuan"`
	Barcode  *string `gorm:"type:varchar(100)" json:"barcode"`

	UserID uint  `gorm:"not null;index" json:"userId"`
	User   *User `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
