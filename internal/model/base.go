package model

import (
	"time"
)

// BaseModel handles the numeric primary key and timestamps. Rows are hard
// deleted, so there is no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
