package services

import (
	"path/filepath"
	"testing"
	"time"

	"posbackend/configs"
	"posbackend/entity"
	"posbackend/remote"
	"posbackend/repository"

	"gorm.io/gorm"
)

func testConfig() *configs.Config {
	return &configs.Config{
		TaxRate:       0.0525,
		RemoteTimeout: 2 * time.Second,
		SyncInterval:  50 * time.Millisecond,
		DineInPolicy: configs.CheckoutPolicy{
			RequireCustomerName: true,
			RequireGuestCount:   true,
			RequireTable:        true,
		},
		TakeawayPolicy: configs.CheckoutPolicy{},
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configs.OpenTestDB(filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func menuItem(name string, price float64) entity.MenuItem {
	return entity.MenuItem{Name: name, Price: price, Category: "Test", Available: true}
}

func seedMenu(t *testing.T, db *gorm.DB, items ...entity.MenuItem) []entity.MenuItem {
	t.Helper()
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed menu: %v", err)
		}
	}
	return items
}

func newCartService(t *testing.T, db *gorm.DB) *CartService {
	t.Helper()
	return NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db), testConfig())
}

func newOrderService(t *testing.T, db *gorm.DB, remoteURL string) *OrderService {
	t.Helper()
	cfg := testConfig()
	cfg.RemoteBaseURL = remoteURL
	rc := remote.NewClient(remoteURL, "", cfg.RemoteTimeout)
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewTableRepository(db),
		rc,
		cfg,
	)
}
