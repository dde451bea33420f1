package configs

import (
	"errors"

	"posbackend/entity"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SchemaVersion is bumped whenever a stored shape changes. The local store
// doubles as the terminal's client storage; records written by an older,
// differently-shaped schema must not resurrect into views expecting the
// current shape.
const SchemaVersion = 2

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = database
}

func SetupDatabase() {
	migrateAll(db)

	var meta entity.SchemaMeta
	err := db.First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		db.Create(&entity.SchemaMeta{Version: SchemaVersion})
	case err != nil:
		log.Fatalf("read schema meta: %v", err)
	case meta.Version != SchemaVersion:
		log.Warnf("local store schema v%d != v%d, resetting carts and unsynced orders", meta.Version, SchemaVersion)
		resetVolatile(db)
		meta.Version = SchemaVersion
		db.Save(&meta)
	}
}

func migrateAll(d *gorm.DB) {
	if err := d.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{}, &entity.DiningTable{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.Payment{},
		&entity.SchemaMeta{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func resetVolatile(d *gorm.DB) {
	d.Where("1 = 1").Delete(&entity.CartItem{})
	d.Where("1 = 1").Delete(&entity.Cart{})
	d.Where("origin = ? AND synced = ?", entity.OriginLocal, false).Delete(&entity.Order{})
}

// OpenTestDB gives package tests a migrated store on a throwaway file.
func OpenTestDB(source string) (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	migrateAll(d)
	return d, nil
}
