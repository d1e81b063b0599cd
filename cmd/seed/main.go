package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tapcard/internal/config"
	"tapcard/internal/db"
	"tapcard/internal/model"
	"tapcard/internal/repository"
)

type seedProfile struct {
	Name       string
	Email      string
	Password   string
	Occupation string
	AboutMe    string
	Links      []seedLink
}

type seedLink struct {
	Title string
	URL   string
}

var demoProfiles = []seedProfile{
	{
		Name:       "Alice Carter",
		Email:      "alice@example.com",
		Password:   "secret1",
		Occupation: "Product Designer",
		AboutMe:    "Designing cards people actually keep.",
		Links: []seedLink{
			{Title: "Portfolio", URL: "https://alice.design"},
			{Title: "LinkedIn", URL: "https://linkedin.com/in/alicecarter"},
		},
	},
	{
		Name:       "Bob Mensah",
		Email:      "bob@example.com",
		Password:   "secret2",
		Occupation: "Freelance Photographer",
		Links: []seedLink{
			{Title: "Instagram", URL: "https://instagram.com/bobshoots"},
		},
	},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Link{}); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	linkRepo := repository.NewLinkRepository(gormDB)

	created := 0
	for _, p := range demoProfiles {
		if existing, err := userRepo.FindByEmail(ctx, p.Email); err == nil && existing != nil {
			logger.Printf("Skipping %s, already seeded", p.Email)
			continue
		} else if err != nil && err != gorm.ErrRecordNotFound {
			logger.Fatalf("Failed to check %s: %v", p.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), 10)
		if err != nil {
			logger.Fatalf("Failed to hash password for %s: %v", p.Email, err)
		}

		user := &model.User{
			Name:         p.Name,
			Email:        p.Email,
			PasswordHash: string(hash),
			Occupation:   p.Occupation,
			AboutMe:      p.AboutMe,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatalf("Failed to create user %s: %v", p.Email, err)
		}

		for i, l := range p.Links {
			link := &model.Link{
				UserID:   user.ID,
				Title:    l.Title,
				URL:      l.URL,
				Position: uint(i),
			}
			if err := linkRepo.Create(ctx, link); err != nil {
				logger.Fatalf("Failed to create link %s for %s: %v", l.URL, p.Email, err)
			}
		}

		created++
		logger.Printf("Seeded %s with %d links", p.Email, len(p.Links))
	}

	logger.Printf("Seed complete, %d profiles created", created)
}
