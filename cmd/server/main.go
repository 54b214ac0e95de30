package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"vessel-logistics-service/internal/adapters/oracle"
	"vessel-logistics-service/internal/adapters/registry"
	"vessel-logistics-service/internal/adapters/repositories"
	"vessel-logistics-service/internal/api"
	"vessel-logistics-service/internal/platform/db"
	"vessel-logistics-service/internal/ports"
	"vessel-logistics-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis, the LLM oracle)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/vessels.json")
	port := getEnv("PORT", "8080")

	oracleKey := os.Getenv("ORACLE_API_KEY")
	if strings.TrimSpace(oracleKey) == "" {
		log.Fatal("ORACLE_API_KEY is required")
	}

	staleAfter, err := time.ParseDuration(getEnv("ANALYSIS_STALE_AFTER", "10m"))
	if err != nil {
		log.Fatalf("invalid ANALYSIS_STALE_AFTER: %v", err)
	}

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	vessels := repositories.NewSqliteVesselRepository(sqliteDB)
	delays := repositories.NewSqliteDelayRepository(sqliteDB)

	// Analysis records can live in a shared Postgres instance so several
	// replicas see the same computing/completed state.
	var analyses ports.AnalysisRepository = repositories.NewSqliteAnalysisRepository(sqliteDB)
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		analyses = repositories.NewSQLAnalysisRepository(pg)
		log.Println("Analysis store: postgres")
	}

	// The in-flight registry defaults to process-local; point REDIS_URL
	// at a shared instance when running more than one replica.
	var inflight ports.InflightRegistry = registry.NewMemoryRegistry()
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		inflight = registry.NewRedisRegistry(redis.NewClient(opts), 0)
		log.Println("In-flight registry: redis")
	}

	llm, err := oracle.NewLLMOracle(oracleKey, os.Getenv("ORACLE_BASE_URL"), os.Getenv("ORACLE_MODEL"))
	if err != nil {
		log.Fatal(err)
	}

	optimization := services.NewOptimizationCoordinator(vessels, analyses, inflight, llm, staleAfter)
	portToPlant := &services.PortToPlantService{Vessels: vessels, Analyses: analyses, Oracle: llm}
	delay := &services.DelayService{Vessels: vessels, Predictions: delays, Oracle: llm}

	router := api.NewRouter(vessels, optimization, portToPlant, delay)

	// Write timeout stays generous: synchronous port-to-plant requests
	// wait on an LLM round trip.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
