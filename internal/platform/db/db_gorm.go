package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/auth/domain/entity"
	contactentity "contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/platform/config"
)

// OpenDB connects to Postgres with a retry loop, since the database container
// may still be starting when the server comes up.
func OpenDB(cfg config.Database, migrate bool) *gorm.DB {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError maps driver unique-violation errors onto
		// gorm.ErrDuplicatedKey so adapters stay driver-agnostic.
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if migrate {
		if err := db.AutoMigrate(
			&entity.User{},
			&contactentity.Contact{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
