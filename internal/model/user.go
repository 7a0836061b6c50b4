package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a store account. Each user owns its items and activity logs.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	NamaToko string `gorm:"type:varchar(255)" json:"namaToko"`
	Role     Role   `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	NamaToko  string    `json:"namaToko"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		NamaToko:  u.NamaToko,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SessionUser is the subset of the user returned alongside a login token.
type SessionUser struct {
	ID       uint   `json:"id"`
	NamaToko string `json:"namaToko"`
	Role     Role   `json:"role"`
}

// ItemCount mirrors the {"_count": {"items": n}} shape admin clients expect.
type ItemCount struct {
	Items int64 `json:"items"`
}

// UserWithItemCount is one row of the admin user listing.
type UserWithItemCount struct {
	UserResponse
	Count ItemCount `json:"_count"`
}
