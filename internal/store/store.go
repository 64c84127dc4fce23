package store

import (
	"context"
	"errors"
	"fmt"

	"binance-order-ledger/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists users and their order reports with gorm.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open, migrated database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID loads a user together with its reports in insertion order.
// It returns models.ErrNotFound when the user does not exist.
func (s *Store) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Reports", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not load user %d: %w", id, err)
	}
	return &user, nil
}

// SaveReport updates a single, already stored report.
func (s *Store) SaveReport(ctx context.Context, report *models.OrderReport) error {
	if report.ID == 0 {
		return fmt.Errorf("report for order %s has not been stored yet", report.ExchangeOrderID)
	}
	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("could not save report %d: %w", report.ID, err)
	}
	return nil
}

// Save writes the user row and inserts any report that has no local id yet,
// all in one transaction. Stored reports are left as they are; use SaveReport
// to update one.
func (s *Store) Save(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return fmt.Errorf("could not save user %d: %w", user.ID, err)
		}
		for i := range user.Reports {
			report := &user.Reports[i]
			if report.ID != 0 {
				continue
			}
			report.UserID = user.ID
			if err := tx.Create(report).Error; err != nil {
				return fmt.Errorf("could not insert report for order %s: %w", report.ExchangeOrderID, err)
			}
		}
		return nil
	})
}
