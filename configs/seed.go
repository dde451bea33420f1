package configs

import (
	"fmt"

	"posbackend/entity"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedLookups creates the dining tables and a starter menu on first run.
func SeedLookups() error {
	for i := 1; i <= 8; i++ {
		no := fmt.Sprintf("T%d", i)
		db.FirstOrCreate(&entity.DiningTable{}, entity.DiningTable{TableNo: no, Seats: 4})
	}

	db.FirstOrCreate(&entity.MenuItem{}, entity.MenuItem{Name: "Masala Chai", Price: 75, Category: "Drinks"})
	db.FirstOrCreate(&entity.MenuItem{}, entity.MenuItem{Name: "Paneer Tikka", Price: 250, Category: "Starters"})
	db.FirstOrCreate(&entity.MenuItem{}, entity.MenuItem{Name: "Butter Naan", Price: 60, Category: "Breads"})

	log.Info("lookup tables seeded")
	return nil
}
