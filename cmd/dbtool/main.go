package main

import (
	"context"
	"log"
	"os"
	"strings"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	poiSeedPath := config.Get("POI_SEED_PATH", "data/seeds/pois.json")
	distanceSeedPath := config.Get("DISTANCE_SEED_PATH", "data/seeds/distances.json")
	profilePath := config.Get("PROFILE_PATH", "")

	profile := config.DefaultProfile()
	if profilePath != "" {
		profile, err = config.LoadProfile(profilePath)
		if err != nil {
			log.Fatal(err)
		}
	}
	vocab := domain.Vocabulary(profile.Categories)

	repo := repositories.NewSQLDatasetRepository(db)

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding datasets...")
	if err := repo.Seed(context.Background(), poiSeedPath, distanceSeedPath, vocab); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
