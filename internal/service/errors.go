package service

import (
	"errors"

	"go-gudang/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("Username atau Password salah")
	ErrRegistrationDenied = errors.New("Akses ditolak! Token hilang atau Secret Key salah.")
	ErrDuplicateUsername  = errors.New("Username sudah digunakan")
	ErrUserNotFound       = errors.New("User tidak ditemukan")
	ErrItemNotFound       = errors.New("Barang tidak ditemukan")
	ErrInvalidResetSecret = errors.New("Ditolak")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: validator.Message(errs)}
	}
	return nil
}

// PersistenceError is a failed write. Clients only see Message.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
