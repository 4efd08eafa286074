package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"campusfinder/backend/internal/api/handler"
	"campusfinder/backend/internal/claims"
	"campusfinder/backend/internal/gamification"
	"campusfinder/backend/internal/identity"
	"campusfinder/backend/internal/items"
	"campusfinder/backend/internal/models"
	"campusfinder/backend/internal/notify"
	"campusfinder/backend/internal/settlement"
	"campusfinder/backend/internal/storage"
	"campusfinder/backend/internal/worker"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "campusfinderdb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Claim{},
		&models.ReputationEvent{},
		&models.Notification{},
		&models.Reward{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Campus Finder Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	resolver := identity.NewResolver(s)
	emitter := notify.NewEmitter(s)
	itemRegistry := items.NewService(s)
	claimManager := claims.NewService(s, emitter)

	// Authority-confirmed anti-collusion settlement is the default policy;
	// swap in settlement.FlatPolicy{} to restore the legacy flat award.
	engine := settlement.NewEngine(s, s, settlement.NewAntiCollusionPolicy(s), emitter)
	game := gamification.NewService(s)

	// Karma reconciliation safety net: the cached counter is incremented
	// atomically, but a crash between increment and ledger append can still
	// cause drift.
	reconciler := worker.NewReconcileWorker(s, 15*time.Minute, 48*time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconciler.Run(ctx)

	h := handler.NewHandler(resolver, itemRegistry, claimManager, engine, game, s, []byte(jwtSecret))
	r := handler.NewRouter(h)

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
