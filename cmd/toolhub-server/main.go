package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/auth"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/categories"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/config"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/database"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/models"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/roles"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/tools"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed reference data and demo fixtures
	if err := ensureSeedData(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		db := database.GetDB()

		// Auth routes (login public, logout/me token-gated internally)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api)

		// Everything else requires a bearer token
		protected := api.Group("", auth.Middleware(db))

		categoriesHandler := categories.NewHandler(db)
		categoriesHandler.RegisterRoutes(protected)

		rolesHandler := roles.NewHandler(db)
		rolesHandler.RegisterRoutes(protected)

		toolsHandler := tools.NewHandler(db)
		toolsHandler.RegisterRoutes(protected)
	}

	log.Printf("Starting toolhub server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureSeedData populates roles, demo users, categories, and sample tools.
// Every step is first-or-create so restarts are safe.
func ensureSeedData(db *gorm.DB) error {
	roleSeeds := []models.Role{
		{Name: "owner", DisplayName: "Owner"},
		{Name: "backend", DisplayName: "Backend Developer"},
		{Name: "frontend", DisplayName: "Frontend Developer"},
		{Name: "qa", DisplayName: "QA"},
		{Name: "designer", DisplayName: "Designer"},
		{Name: "project_manager", DisplayName: "Project Manager"},
	}
	for _, seed := range roleSeeds {
		seed.Description = "Role for " + seed.DisplayName
		if err := db.Where(models.Role{Name: seed.Name}).FirstOrCreate(&seed).Error; err != nil {
			return err
		}
	}

	userSeeds := []struct {
		Name     string
		Email    string
		RoleName string
	}{
		{"Ivan Ivanov", "ivan@admin.local", "owner"},
		{"Elena Petrova", "elena@frontend.local", "frontend"},
		{"Petar Georgiev", "petar@backend.local", "backend"},
	}
	for _, seed := range userSeeds {
		var role models.Role
		if err := db.Where("name = ?", seed.RoleName).First(&role).Error; err != nil {
			return err
		}

		var existing models.User
		if err := db.Where("email = ?", seed.Email).First(&existing).Error; err == nil {
			continue
		}

		hash, err := auth.HashPassword("password")
		if err != nil {
			return err
		}
		user := models.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: hash,
			RoleID:       role.ID,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	categorySeeds := []models.Category{
		{Name: "Development", Slug: "development", Description: "Development tools and IDEs"},
		{Name: "Design", Slug: "design", Description: "Design and prototyping tools"},
		{Name: "Project Management", Slug: "project-management", Description: "Project management and collaboration tools"},
		{Name: "AI & Machine Learning", Slug: "ai-ml", Description: "AI and ML powered tools"},
		{Name: "Testing & QA", Slug: "testing-qa", Description: "Testing and quality assurance tools"},
	}
	for _, seed := range categorySeeds {
		if err := db.Where(models.Category{Slug: seed.Slug}).FirstOrCreate(&seed).Error; err != nil {
			return err
		}
	}

	return seedSampleTools(db)
}

func seedSampleTools(db *gorm.DB) error {
	var owner models.User
	if err := db.Where("email = ?", "ivan@admin.local").First(&owner).Error; err != nil {
		return err
	}
	var aiCategory models.Category
	if err := db.Where("slug = ?", "ai-ml").First(&aiCategory).Error; err != nil {
		return err
	}
	var backendRole, frontendRole, designerRole models.Role
	if err := db.Where("name = ?", "backend").First(&backendRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "frontend").First(&frontendRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "designer").First(&designerRole).Error; err != nil {
		return err
	}

	toolSeeds := []struct {
		Tool  models.Tool
		Roles []models.Role
	}{
		{
			Tool: models.Tool{
				Name:                  "ChatGPT",
				Link:                  "https://chat.openai.com",
				Description:           "AI-powered conversational assistant for code, writing, and problem-solving",
				OfficialDocumentation: "https://platform.openai.com/docs",
				HowToUse:              "Simply start a conversation and ask questions or request assistance with various tasks.",
				Tags:                  datatypes.NewJSONSlice([]string{"ai", "chatbot", "productivity"}),
			},
			Roles: []models.Role{backendRole, frontendRole},
		},
		{
			Tool: models.Tool{
				Name:                  "GitHub Copilot",
				Link:                  "https://github.com/features/copilot",
				Description:           "AI pair programmer that suggests code completions",
				OfficialDocumentation: "https://docs.github.com/copilot",
				HowToUse:              "Install the extension in your IDE and start coding. Copilot will suggest completions as you type.",
				Tags:                  datatypes.NewJSONSlice([]string{"ai", "coding", "ide"}),
			},
			Roles: []models.Role{backendRole, frontendRole},
		},
		{
			Tool: models.Tool{
				Name:        "Midjourney",
				Link:        "https://www.midjourney.com",
				Description: "AI art generator that creates images from text descriptions",
				HowToUse:    "Use Discord to interact with the Midjourney bot and generate images from text prompts.",
				Tags:        datatypes.NewJSONSlice([]string{"ai", "design", "art"}),
			},
			Roles: []models.Role{designerRole},
		},
	}

	for _, seed := range toolSeeds {
		var existing models.Tool
		if err := db.Where("name = ?", seed.Tool.Name).First(&existing).Error; err == nil {
			continue
		}

		tool := seed.Tool
		tool.UserID = owner.ID
		tool.Images = datatypes.NewJSONSlice([]string{})

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&tool).Error; err != nil {
				return err
			}
			if err := tx.Model(&tool).Association("Categories").Replace([]models.Category{aiCategory}); err != nil {
				return err
			}
			return tx.Model(&tool).Association("RecommendedRoles").Replace(seed.Roles)
		})
		if err != nil {
			return err
		}
		log.Printf("Seeded sample tool: %s", tool.Name)
	}

	return nil
}
