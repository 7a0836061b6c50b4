package model

import (
	"fmt"
	"time"
)

// Action is the kind of item mutation an activity log records.
type Action string

const (
	ActionCreate Action = "TAMBAH"
	ActionUpdate Action = "EDIT"
	ActionDelete Action = "HAPUS"
)

// ActivityLog records one item mutation. ItemID becomes NULL once the item
// it points at is deleted.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Aksi      Action    `gorm:"type:varchar(10);not null" json:"aksi"`
	Rincian   string    `gorm:"type:text" json:"rincian"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	ItemID    *uint     `gorm:"index" json:"itemId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	User *User `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Item *Item `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func NewCreateLog(item *Item) *ActivityLog {
	id := item.ID
	return &ActivityLog{
		Aksi:    ActionCreate,
		Rincian: fmt.Sprintf("Menambah: %s (%d %s)", item.Nama, item.Stok, item.Satuan),
		UserID:  item.UserID,
		ItemID:  &id,
	}
}

func NewUpdateLog(item *Item) *ActivityLog {
	id := item.ID
	return &ActivityLog{
		Aksi:    ActionUpdate,
		Rincian: fmt.Sprintf("Update: %s", item.Nama),
		UserID:  item.UserID,
		ItemID:  &id,
	}
}

// NewDeleteLog leaves ItemID nil since the item is removed in the same transaction.
func NewDeleteLog(item *Item) *ActivityLog {
	return &ActivityLog{
		Aksi:    ActionDelete,
		Rincian: fmt.Sprintf("Hapus: %s", item.Nama),
		UserID:  item.UserID,
	}
}
