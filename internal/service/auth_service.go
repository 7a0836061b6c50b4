package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"go-gudang/internal/model"
	"go-gudang/internal/repository"
	"go-gudang/pkg/jwt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Register(req *RegisterRequest, bearerToken string) (model.Role, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  model.SessionUser `json:"user"`
	Token string            `json:"token"`
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	NamaToko    string `json:"namaToko" validate:"required"`
	AdminSecret string `json:"adminSecret"`
}

type authService struct {
	userRepo    repository.UserRepository
	tokens      *jwt.Manager
	ownerSecret string
	log         zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, ownerSecret string, log zerolog.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		ownerSecret: ownerSecret,
		log:         log,
	}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Cari user
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		s.log.Warn().Str("username", req.Username).Str("reason", "user_not_found").Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	// 2. Cek password
	if !user.CheckPassword(req.Password) {
		s.log.Warn().Str("username", req.Username).Str("reason", "wrong_password").Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	// 3. Generate token
	token, err := s.tokens.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		User: model.SessionUser{
			ID:       user.ID,
			NamaToko: user.NamaToko,
			Role:     user.Role,
		},
		Token: token,
	}, nil
}

// Register creates an ADMIN when the owner secret matches, or a USER when the
// caller presents a valid ADMIN token. Authorization is decided before the
// body is validated.
func (s *authService) Register(req *RegisterRequest, bearerToken string) (model.Role, error) {
	role, err := s.authorizeRegistration(req.AdminSecret, bearerToken)
	if err != nil {
		return "", err
	}

	if err := validate(req); err != nil {
		return "", err
	}

	user := &model.User{
		Username: req.Username,
		NamaToko: req.NamaToko,
		Role:     role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateUsername
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", role.String()).Msg("user registered")
	return role, nil
}

func (s *authService) authorizeRegistration(adminSecret, bearerToken string) (model.Role, error) {
	if adminSecret != "" && s.ownerSecret != "" &&
		subtle.ConstantTimeCompare([]byte(adminSecret), []byte(s.ownerSecret)) == 1 {
		return model.RoleAdmin, nil
	}

	if bearerToken != "" {
		claims, err := s.tokens.ValidateToken(bearerToken)
		if err != nil {
			return "", jwt.ErrInvalidToken
		}
		if model.Role(claims.Role) == model.RoleAdmin {
			return model.RoleUser, nil
		}
	}

	s.log.Warn().Bool("has_token", bearerToken != "").Msg("registration denied")
	return "", ErrRegistrationDenied
}
