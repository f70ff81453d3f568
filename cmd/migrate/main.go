package main

import (
	"log"
	"os"
	"time"

	"resume-builder-be/internal/model"
	"resume-builder-be/pkg/database"
	"resume-builder-be/pkg/plancatalog"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (gen_random_uuid and pgvector)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.EmailVerificationToken{},
		&model.UserRefreshToken{},
		&model.UserProvider{},
		&model.Template{},
		&model.Resume{},
		&model.ResumeEmbedding{},
		&model.UsageLedger{},
		&model.BillingSubscription{},
		&model.JobApplication{},
		&model.AiInteraction{},
		&model.AnalyticsEvent{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: backfill ledgers for accounts created before
	// the ledger table existed. Limits come from the plan catalog.
	log.Println("Step 3: Backfilling usage ledgers...")

	var orphans []model.User
	if err := db.
		Where("id NOT IN (SELECT user_id FROM usage_ledgers)").
		Find(&orphans).Error; err != nil {
		log.Fatalf("Error: Failed to query users without ledgers: %v", err)
	}

	for _, user := range orphans {
		tier, _ := plancatalog.ParseTier(user.Plan)
		limits := plancatalog.Limits(tier)

		ledger := model.UsageLedger{
			UserId:         user.Id,
			ResumesLimit:   limits.Resumes,
			AiCreditsLimit: limits.AICredits,
			LastResetAt:    time.Now(),
		}
		if err := db.Create(&ledger).Error; err != nil {
			log.Printf("Warn: Failed to backfill ledger for user %s: %v", user.Id, err)
		}
	}
	if len(orphans) > 0 {
		log.Printf("Backfilled %d usage ledgers", len(orphans))
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
