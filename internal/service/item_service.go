package service

import (
	"errors"

	"go-gudang/internal/model"
	"go-gudang/internal/repository"
	"go-gudang/pkg/metrics"
	"go-gudang/pkg/validator"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// EventPublisher receives every activity log once its transaction commits.
type EventPublisher interface {
	PublishJSON(payload interface{}) error
}

type ItemService interface {
	GetItems(userID uint) ([]model.Item, error)
	CreateItem(userID uint, req *ItemRequest) (*model.Item, error)
	UpdateItem(id, userID uint, req *ItemRequest) (*model.Item, error)
	DeleteItem(id, userID uint) error
}

// ItemRequest is the body of POST and PUT /items. harga and stok accept a
// JSON number or a numeric string.
type ItemRequest struct {
	Nama     string            `json:"nama" validate:"required"`
	Harga    validator.Numeric `json:"harga" validate:"present,gte=0"`
	Stok     validator.Numeric `json:"stok" validate:"present,gte=0"`
	Kategori string            `json:"kategori"`
	Satuan   string            `json:"satuan"`
	Barcode  *string           `json:"barcode"`
}

type itemService struct {
	db        *gorm.DB
	itemRepo  repository.ItemRepository
	logRepo   repository.ActivityLogRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewItemService wires the item flows. publisher may be nil, in which case
// committed logs are only counted.
func NewItemService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	logRepo repository.ActivityLogRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) ItemService {
	return &itemService{
		db:        db,
		itemRepo:  itemRepo,
		logRepo:   logRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *itemService) GetItems(userID uint) ([]model.Item, error) {
	return s.itemRepo.FindAllByUser(userID)
}

func (s *itemService) CreateItem(userID uint, req *ItemRequest) (*model.Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item := &model.Item{
		Nama:     req.Nama,
		Harga:    req.Harga.Int64(),
		Stok:     req.Stok.Int64(),
		Kategori: req.Kategori,
		Satuan:   req.Satuan,
		Barcode:  req.Barcode,
		UserID:   userID,
	}

	var entry *model.ActivityLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.itemRepo.Create(tx, item); err != nil {
			return err
		}
		entry = model.NewCreateLog(item)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, &PersistenceError{Message: "Gagal simpan", Err: err}
	}

	s.committed(entry)
	return item, nil
}

func (s *itemService) UpdateItem(id, userID uint, req *ItemRequest) (*model.Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"nama":     req.Nama,
		"harga":    req.Harga.Int64(),
		"stok":     req.Stok.Int64(),
		"kategori": req.Kategori,
		"satuan":   req.Satuan,
	}
	if req.Barcode != nil {
		fields["barcode"] = *req.Barcode
	}

	item := &model.Item{UserID: userID}
	item.ID = id

	var entry *model.ActivityLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.itemRepo.Update(tx, item, fields); err != nil {
			return err
		}
		entry = model.NewUpdateLog(item)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, &PersistenceError{Message: "Gagal update", Err: err}
	}

	s.committed(entry)
	return item, nil
}

func (s *itemService) DeleteItem(id, userID uint) error {
	item, err := s.itemRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return &PersistenceError{Message: "Gagal hapus", Err: err}
	}

	entry := model.NewDeleteLog(item)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.Create(tx, entry); err != nil {
			return err
		}
		return s.itemRepo.Delete(tx, item.ID, userID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return &PersistenceError{Message: "Gagal hapus", Err: err}
	}

	s.committed(entry)
	return nil
}

// committed runs the side effects that must only follow a successful commit.
func (s *itemService) committed(entry *model.ActivityLog) {
	metrics.ActivityLogs.WithLabelValues(string(entry.Aksi)).Inc()

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(entry); err != nil {
		s.log.Error().Err(err).Uint("log_id", entry.ID).Str("aksi", string(entry.Aksi)).Msg("failed to publish activity event")
	}
}
