package db

import (
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate creates or updates the schema for every model the service owns.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.TokenPair{},
		&models.RevokedToken{},
		&models.Competition{},
		&models.QuestionnaireResponse{},
		&models.CompetitionInteraction{},
		&models.RecommendedCompetition{},
	)
}
