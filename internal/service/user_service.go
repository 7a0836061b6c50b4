package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"go-gudang/internal/model"
	"go-gudang/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UserService interface {
	GetAllUsers() ([]model.UserWithItemCount, error)
	UpdateUser(id uint, req *UpdateUserRequest) (*model.UserResponse, error)
	DeleteUser(id uint) error
	ResetPassword(req *ResetPasswordRequest) error
	SetPassword(username, newPassword string) error
}

type UpdateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=50"`
	NamaToko string     `json:"namaToko" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=ADMIN USER"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
	AdminSecret string `json:"adminSecret"`
}

type userService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	logRepo     repository.ActivityLogRepository
	resetSecret string
	log         zerolog.Logger
}

func NewUserService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	logRepo repository.ActivityLogRepository,
	resetSecret string,
	log zerolog.Logger,
) UserService {
	return &userService{
		db:          db,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		logRepo:     logRepo,
		resetSecret: resetSecret,
		log:         log,
	}
}

func (s *userService) GetAllUsers() ([]model.UserWithItemCount, error) {
	return s.userRepo.FindAllWithItemCount()
}

func (s *userService) UpdateUser(id uint, req *UpdateUserRequest) (*model.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.Username = req.Username
	user.NamaToko = req.NamaToko
	user.Role = req.Role

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, &PersistenceError{Message: "Gagal update", Err: err}
	}

	resp := user.ToResponse()
	return &resp, nil
}

// DeleteUser removes the user together with everything it owns. Logs go
// first so no row is left pointing at a deleted item or user.
func (s *userService) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.DeleteByUser(tx, id); err != nil {
			return err
		}
		if err := s.itemRepo.DeleteByUser(tx, id); err != nil {
			return err
		}
		return s.userRepo.Delete(tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return &PersistenceError{Message: "Gagal hapus", Err: err}
	}

	s.log.Info().Uint("user_id", id).Msg("user deleted with items and logs")
	return nil
}

func (s *userService) ResetPassword(req *ResetPasswordRequest) error {
	if req.AdminSecret == "" || s.resetSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.AdminSecret), []byte(s.resetSecret)) != 1 {
		s.log.Warn().Str("username", req.Username).Msg("password reset rejected")
		return ErrInvalidResetSecret
	}

	if err := validate(req); err != nil {
		return err
	}

	return s.SetPassword(req.Username, req.NewPassword)
}

// SetPassword replaces the password of username without any secret check.
// The operator CLI calls it directly.
func (s *userService) SetPassword(username, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Message: "Validation failed: newPassword must be at least 6"}
	}

	hashed, err := model.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(username, hashed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log.Info().Str("username", username).Msg("password reset")
	return nil
}
