package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gold-ledger/internal/models"

	"gorm.io/gorm"
)

var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreAlreadyExists = errors.New("store already exists")
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) StoreRepositoryInterface {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *models.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrStoreAlreadyExists
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *storeRepository) GetByName(name string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("name = ?", strings.TrimSpace(name)).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

// List returns stores ordered by name
func (r *storeRepository) List(offset, limit int) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	if err := r.db.Model(&models.Store{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	if err := r.db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&stores).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}

	return stores, total, nil
}
