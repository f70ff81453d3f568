package main

import (
	"log"
	"os"
	"time"

	"resume-builder-be/internal/model"
	"resume-builder-be/pkg/database"
	"resume-builder-be/pkg/plancatalog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Template Catalog...")
	seedTemplates(db)

	color.Cyan("Seeding Admin Account...")
	seedAdmin(db)

	color.Green("✅ Seeding completed!")
}

func seedTemplates(db *gorm.DB) {
	sections := func(names ...string) datatypes.JSON {
		doc := `{"sections":[`
		for i, n := range names {
			if i > 0 {
				doc += ","
			}
			doc += `"` + n + `"`
		}
		doc += `]}`
		return datatypes.JSON([]byte(doc))
	}

	templates := []model.Template{
		{
			Name:        "Classic",
			Slug:        "classic",
			Description: "Single-column layout with a traditional feel. Safe for any industry.",
			Category:    "general",
			IsPremium:   false,
			Structure:   sections("summary", "experience", "education", "skills"),
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Name:        "Minimal",
			Slug:        "minimal",
			Description: "Plenty of whitespace, no graphics. Reads well through ATS parsers.",
			Category:    "general",
			IsPremium:   false,
			Structure:   sections("summary", "experience", "education", "skills", "languages"),
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Name:        "Modern",
			Slug:        "modern",
			Description: "Two-column layout with an accent color sidebar.",
			Category:    "creative",
			IsPremium:   true,
			Structure:   sections("summary", "experience", "projects", "education", "skills"),
			IsActive:    true,
			SortOrder:   3,
		},
		{
			Name:        "Engineering",
			Slug:        "engineering",
			Description: "Projects and skills up front. Built for technical roles.",
			Category:    "technical",
			IsPremium:   true,
			Structure:   sections("summary", "skills", "projects", "experience", "education", "certifications"),
			IsActive:    true,
			SortOrder:   4,
		},
		{
			Name:        "Executive",
			Slug:        "executive",
			Description: "Leadership-focused layout with space for board roles and publications.",
			Category:    "business",
			IsPremium:   true,
			Structure:   sections("summary", "experience", "achievements", "education", "affiliations"),
			IsActive:    true,
			SortOrder:   5,
		},
	}

	for _, t := range templates {
		var existing model.Template
		if err := db.Where("slug = ?", t.Slug).First(&existing).Error; err == nil {
			log.Printf("Template '%s' already exists, skipping...", t.Slug)
			continue
		}

		if err := db.Create(&t).Error; err != nil {
			color.Red("Error creating template '%s': %v", t.Slug, err)
		} else {
			log.Printf("Created template: %s (%s)", t.Name, t.Slug)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		color.Yellow("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)
	now := time.Now()

	admin := model.User{
		Email:           email,
		PasswordHash:    &hashStr,
		FullName:        "Administrator",
		Role:            "admin",
		Status:          "active",
		Plan:            string(plancatalog.TierEnterprise),
		EmailVerified:   true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin user: %v", err)
		return
	}

	limits := plancatalog.Limits(plancatalog.TierEnterprise)
	ledger := model.UsageLedger{
		UserId:         admin.Id,
		ResumesLimit:   limits.Resumes,
		AiCreditsLimit: limits.AICredits,
		LastResetAt:    now,
	}
	if err := db.Create(&ledger).Error; err != nil {
		color.Red("Error creating admin ledger: %v", err)
		return
	}

	log.Printf("Created admin: %s", email)
}
