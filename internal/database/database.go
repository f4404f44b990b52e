package database

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"assetdesk/internal/config"
	"assetdesk/internal/models"
	"assetdesk/internal/repositories"
	"assetdesk/pkg/passhash"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens the sqlite store with foreign key enforcement enabled.
func Open(path string) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(path+sep+"_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

// Migrate creates the users and assets tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Asset{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Initialize opens the store and, when the database file did not yet exist,
// creates the schema and seeds the admin account plus optional sample data.
// An existing file makes this a plain open; the presence of the storage
// artifact is the idempotence check, not schema introspection.
func Initialize(cfg config.Config) (*gorm.DB, error) {
	_, statErr := os.Stat(cfg.DatabasePath)
	fresh := os.IsNotExist(statErr)

	db, err := Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db, cfg); err != nil {
		return nil, err
	}
	log.Printf("Successfully created %s database", cfg.DatabasePath)
	return db, nil
}

// Seed inserts the admin account and, when enabled, the sample users and
// assets. Individual duplicate-row failures are logged and swallowed; only
// a failure to hash or create the admin account is fatal.
func Seed(db *gorm.DB, cfg config.Config) error {
	userRepo := repositories.NewGORMUserRepository(db)
	assetRepo := repositories.NewGORMAssetRepository(db)

	if err := seedAdmin(userRepo, cfg.AdminSeedPassword); err != nil {
		return err
	}
	if cfg.SeedSampleData {
		seedSampleUsers(userRepo)
		seedSampleAssets(assetRepo)
	}
	return nil
}

func seedAdmin(repo repositories.UserRepository, password string) error {
	hashed, err := passhash.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin seed password: %w", err)
	}

	admin := &models.User{
		Username: "Admin",
		Email:    "admin@admin.com",
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := repo.Create(admin); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			log.Println("Admin account already exists")
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	log.Println("Admin account created successfully")
	return nil
}

func seedSampleUsers(repo repositories.UserRepository) {
	names := []string{"Bob", "Alice", "Charlie", "David", "Eve", "Frank", "Grace", "Hannah", "Isaac", "Julia"}
	for _, name := range names {
		hashed, err := passhash.Hash(name)
		if err != nil {
			log.Printf("Error hashing sample password for %s: %v", name, err)
			continue
		}
		user := &models.User{
			Username: name,
			Email:    strings.ToLower(name) + "@gmail.com",
			Password: hashed,
			Role:     models.RoleUser,
		}
		if err := repo.Create(user); err != nil {
			log.Printf("Error inserting sample user %s: %v", name, err)
		}
	}
	log.Println("Sample users created")
}

func seedSampleAssets(repo repositories.AssetRepository) {
	names := []string{"Monitor", "Mouse", "Keyboard", "Laptop", "Printer", "Webcam", "Speaker", "Router", "Chair", "Desk"}
	statuses := []string{"Available", "In Use", "Damaged", "Maintenance"}

	for _, name := range names {
		description := fmt.Sprintf("A %s for office use.", strings.ToLower(name))
		asset := &models.Asset{
			Name:        name,
			Description: &description,
			Status:      statuses[rand.Intn(len(statuses))],
		}
		if err := repo.Create(asset); err != nil {
			log.Printf("Error inserting sample asset %s: %v", name, err)
		}
	}
	log.Println("Sample assets created")
}
