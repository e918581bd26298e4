package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
	"gold-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrInvalidStoreBalance = errors.New("store balances must be non-negative numbers")

// CustomerService manages the customer directory
type CustomerService struct {
	customerRepo repositories.CustomerRepositoryInterface
	audit        *AuditLogger
}

func NewCustomerService(customerRepo repositories.CustomerRepositoryInterface, logger *slog.Logger) CustomerServiceInterface {
	return &CustomerService{customerRepo: customerRepo, audit: NewAuditLogger(logger)}
}

func (s *CustomerService) Create(req *dto.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	s.audit.LogCustomerAdded(customer)
	return customer, nil
}

// List returns customers newest first
func (s *CustomerService) List(page pagination.PageRequest) (*models.PageResult[models.Customer], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	customers, total, err := s.customerRepo.List(page.Offset(), page.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return &models.PageResult[models.Customer]{Items: customers, TotalCount: total}, nil
}

// StoreService manages stores and their opening inventory
type StoreService struct {
	storeRepo repositories.StoreRepositoryInterface
	audit     *AuditLogger
}

func NewStoreService(storeRepo repositories.StoreRepositoryInterface, logger *slog.Logger) StoreServiceInterface {
	return &StoreService{storeRepo: storeRepo, audit: NewAuditLogger(logger)}
}

func (s *StoreService) Create(req *dto.CreateStoreRequest) (*models.Store, error) {
	gold, err := parseBalance(req.TotalGold)
	if err != nil {
		return nil, err
	}
	cash, err := parseBalance(req.TotalAmount)
	if err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:        strings.TrimSpace(req.Name),
		TotalGold:   gold,
		TotalAmount: cash,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	s.audit.LogStoreOpened(store)
	return store, nil
}

// List returns stores ordered by name
func (s *StoreService) List(page pagination.PageRequest) (*models.PageResult[models.Store], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	stores, total, err := s.storeRepo.List(page.Offset(), page.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	if stores == nil {
		stores = []models.Store{}
	}
	return &models.PageResult[models.Store]{Items: stores, TotalCount: total}, nil
}

// parseBalance reads an optional opening balance; empty means zero
func parseBalance(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidStoreBalance
	}
	return d, nil
}
