package store

import (
	"context"
	"testing"
	"time"

	"binance-order-ledger/internal/database"
	"binance-order-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest creates a Store on a fresh in-memory database.
func setupTest(t *testing.T) (*Store, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return New(db), db
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		s, _ := setupTest(t)

		user, err := s.FindByID(ctx, 42)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("ReportsInInsertionOrder", func(t *testing.T) {
		s, db := setupTest(t)
		user := models.User{Name: "alice"}
		require.NoError(t, db.Create(&user).Error)
		for _, id := range []string{"1", "2", "3"} {
			require.NoError(t, db.Create(&models.OrderReport{UserID: user.ID, ExchangeOrderID: id, Symbol: "BTCUSDT", Status: models.StatusOpen}).Error)
		}

		loaded, err := s.FindByID(ctx, user.ID)

		require.NoError(t, err)
		require.Len(t, loaded.Reports, 3)
		assert.Equal(t, "1", loaded.Reports[0].ExchangeOrderID)
		assert.Equal(t, "2", loaded.Reports[1].ExchangeOrderID)
		assert.Equal(t, "3", loaded.Reports[2].ExchangeOrderID)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s, db := setupTest(t)
	limit := 5.0
	user := models.User{Name: "bob", OrderQuantityLimit: &limit}
	require.NoError(t, db.Create(&user).Error)

	loaded, err := s.FindByID(ctx, user.ID)
	require.NoError(t, err)

	loaded.Reports = append(loaded.Reports, models.OrderReport{
		ExchangeOrderID: "100",
		Symbol:          "ETHUSDT",
		Quantity:        2,
		PurchasePrice:   3000,
		Status:          models.StatusOpen,
		OperatedAt:      time.Now(),
	})
	require.NoError(t, s.Save(ctx, loaded))
	assert.NotZero(t, loaded.Reports[0].ID)
	assert.Equal(t, user.ID, loaded.Reports[0].UserID)

	// Saving again must not duplicate reports.
	require.NoError(t, s.Save(ctx, loaded))

	reloaded, err := s.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Reports, 1)
	assert.Equal(t, "ETHUSDT", reloaded.Reports[0].Symbol)
	require.NotNil(t, reloaded.OrderQuantityLimit)
	assert.Equal(t, 5.0, *reloaded.OrderQuantityLimit)
}

func TestSaveReport(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesStoredReport", func(t *testing.T) {
		s, db := setupTest(t)
		user := models.User{Name: "carol", Reports: []models.OrderReport{{ExchangeOrderID: "1", Symbol: "BTCUSDT", PurchasePrice: 10, Status: models.StatusOpen}}}
		require.NoError(t, db.Create(&user).Error)

		report := user.Reports[0]
		report.SalePrice = 15
		report.Status = models.StatusClosed
		require.NoError(t, s.SaveReport(ctx, &report))

		reloaded, err := s.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Reports, 1)
		assert.Equal(t, models.StatusClosed, reloaded.Reports[0].Status)
		assert.Equal(t, 15.0, reloaded.Reports[0].SalePrice)
		assert.Equal(t, 10.0, reloaded.Reports[0].PurchasePrice)
	})

	t.Run("RejectsUnstoredReport", func(t *testing.T) {
		s, _ := setupTest(t)

		err := s.SaveReport(ctx, &models.OrderReport{ExchangeOrderID: "9"})

		assert.Error(t, err)
	})
}
