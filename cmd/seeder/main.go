package main

import (
	"log"

	"github.com/shriya7756/campusconnect-backend/internal/config"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.NoteComment{},
		&models.Question{},
		&models.Answer{},
		&models.ExchangeItem{},
		&models.Progress{},
		&models.Feedback{},
		&models.Reaction{},
		&models.EntityView{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seeds.Run(database.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
