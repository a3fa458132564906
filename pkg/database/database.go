package database

import (
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to MySQL. TranslateError lets unique index violations surface
// as gorm.ErrDuplicatedKey, which the submission ledger depends on.
func Open(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate applies the schema once at start. The unique indexes on ideas and
// quiz_responses are created here and nowhere else.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.Schema()...); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}
