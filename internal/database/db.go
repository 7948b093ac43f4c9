package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobtracker/internal/models"
)

// Connect opens the Postgres database and migrates the schema.
// TranslateError lets callers match duplicate-key failures with
// errors.Is instead of driver-specific codes.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		return nil, err
	}
	return db, nil
}
