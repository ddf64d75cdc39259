package main

import (
	"log"
	"os"

	"ai-faq-generator-be/internal/model"
	"ai-faq-generator-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
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

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
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
		&model.FaqDocument{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.CreditTransaction{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed Baseline Plans (idempotent on slug)
	log.Println("Step 3: Seeding subscription plans...")

	plans := []model.SubscriptionPlan{
		{
			Name:          "Gratuit",
			Slug:          "free",
			Description:   "5 générations de FAQ par jour",
			Price:         0,
			BillingPeriod: "monthly",
			FaqDailyLimit: 5,
			IsActive:      true,
			SortOrder:     0,
		},
		{
			Name:          "Pro",
			Slug:          "pro-monthly",
			Description:   "20 générations de FAQ par jour",
			Price:         49000,
			BillingPeriod: "monthly",
			FaqDailyLimit: 20,
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Name:          "Pro Annuel",
			Slug:          "pro-yearly",
			Description:   "20 générations de FAQ par jour, facturé annuellement",
			Price:         490000,
			BillingPeriod: "yearly",
			FaqDailyLimit: 20,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Name:          "Illimité",
			Slug:          "unlimited-monthly",
			Description:   "Générations de FAQ illimitées",
			Price:         99000,
			BillingPeriod: "monthly",
			FaqDailyLimit: -1,
			IsActive:      true,
			SortOrder:     3,
		},
	}

	for _, plan := range plans {
		var existing model.SubscriptionPlan
		err := db.Where("slug = ?", plan.Slug).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&plan).Error; err != nil {
				log.Printf("Warn: Failed to seed plan %s: %v", plan.Slug, err)
			} else {
				log.Printf("Seeded plan: %s", plan.Slug)
			}
		} else if err != nil {
			log.Printf("Warn: Failed to check plan %s: %v", plan.Slug, err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
