package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
	"trip-planner-service/internal/services"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the SQLite dataset repository behind the source ports, builds the
// planner once at startup, and serves the HTTP API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	poiSeedPath := config.Get("POI_SEED_PATH", "data/seeds/pois.json")
	distanceSeedPath := config.Get("DISTANCE_SEED_PATH", "data/seeds/distances.json")
	profilePath := config.Get("PROFILE_PATH", "")
	port := config.Get("PORT", "8080")

	profile, err := loadProfile(profilePath)
	if err != nil {
		log.Fatal(err)
	}
	vocab := domain.Vocabulary(profile.Categories)

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed the datasets on startup for local runs.
	repo := repositories.NewSqliteDatasetRepository(db)
	if err := initAndSeed(repo, poiSeedPath, distanceSeedPath, vocab); err != nil {
		log.Fatal(err)
	}

	cat, graph, err := loadDatasets(repo, vocab)
	if err != nil {
		log.Fatal(err)
	}

	selector := services.NewSelector(vocab, services.NewNameSimilarity(profile.SimilarityStopwords, profile.LandmarkTokens))
	planner := services.NewPlanner(cat, graph, selector, cityMapping(profile))
	router := api.NewRouter(planner, cat)

	// Planning is CPU-bound and in-memory; timeouts stay tight.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func loadProfile(path string) (*config.Profile, error) {
	if path == "" {
		return config.DefaultProfile(), nil
	}
	return config.LoadProfile(path)
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(repo *repositories.SqliteDatasetRepository, poiPath, distancePath string, vocab domain.Vocabulary) error {
	if err := repositories.InitSchema(repo.DB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repo.Seed(context.Background(), poiPath, distancePath, vocab); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func loadDatasets(repo *repositories.SqliteDatasetRepository, vocab domain.Vocabulary) (*catalog.Catalog, *routegraph.Graph, error) {
	ctx := context.Background()

	pois, err := repo.ListPOIRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load datasets: %w", err)
	}
	distances, err := repo.DistanceMatrix(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load datasets: %w", err)
	}

	return services.LoadCatalog(pois, distances, vocab)
}

func cityMapping(profile *config.Profile) services.CityMapping {
	distanceToPOI := make(map[string]string, len(profile.CityIdentities))
	for _, identity := range profile.CityIdentities {
		distanceToPOI[identity.DistanceName] = identity.POIName
	}
	return services.CityMapping{
		CountrySuffix: profile.CountrySuffix,
		DistanceToPOI: distanceToPOI,
		ExtraAliases:  profile.ExtraAliases,
	}
}
