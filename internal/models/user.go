package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by user lookups when no such user exists.
var ErrNotFound = errors.New("record not found")

// User owns exchange credentials, an optional per-order quantity ceiling and
// the ledger of its order reports. Reports are kept in insertion order, which
// is the order open positions are matched in.
type User struct {
	gorm.Model
	Name               string        `json:"name"`
	BinanceAPIKey      *string       `json:"-"`
	BinanceSecretKey   *string       `json:"-"`
	OrderQuantityLimit *float64      `json:"order_quantity_limit,omitempty"`
	Reports            []OrderReport `gorm:"foreignKey:UserID" json:"reports,omitempty"`
}

// Credentials returns the Binance key pair and whether both halves are usable.
func (u *User) Credentials() (apiKey, secretKey string, ok bool) {
	if u.BinanceAPIKey == nil || u.BinanceSecretKey == nil {
		return "", "", false
	}
	if *u.BinanceAPIKey == "" || *u.BinanceSecretKey == "" {
		return "", "", false
	}
	return *u.BinanceAPIKey, *u.BinanceSecretKey, true
}
