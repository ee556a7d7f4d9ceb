package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tradeboard/internal/database"
	"tradeboard/internal/domain"
)

// Development fixtures: an owner, an admin, two verified traders, a
// plain member, some forum activity, marketplace listings and a deal
// in each interesting lifecycle stage.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tradeboard.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notifications",
		"review_assessments",
		"deal_reviews",
		"deal_responses",
		"deals",
		"agents",
		"posts",
		"threads",
		"admin_requests",
		"verification_requests",
		"profiles",
	} {
		db.Exec("DELETE FROM " + table)
	}

	log.Println("Creating profiles...")

	owner := createProfile(db, "owner", "owner@tradeboard.dev", "owner123", func(p *domain.Profile) {
		p.IsOwner = true
		p.IsAdmin = true
		p.IsVerified = true
		p.HonorableTitle = "Founder"
	})
	admin := createProfile(db, "moderator", "admin@tradeboard.dev", "admin123", func(p *domain.Profile) {
		p.IsAdmin = true
		p.IsVerified = true
	})
	alice := createProfile(db, "alice", "alice@tradeboard.dev", "alice123", func(p *domain.Profile) {
		p.IsVerified = true
		p.PostCount = 52
		p.Reputation = 14
	})
	bob := createProfile(db, "bob", "bob@tradeboard.dev", "bob123", func(p *domain.Profile) {
		p.IsVerified = true
		p.PostCount = 11
		p.Reputation = 3
	})
	carol := createProfile(db, "carol", "carol@tradeboard.dev", "carol123", nil)

	log.Println("Creating forum content...")

	welcome := domain.Thread{
		AuthorID: owner.ID,
		Title:    "Welcome to the board",
		Content:  "Introduce yourself and read the trading rules before proposing deals.",
		IsPinned: true,
	}
	db.Create(&welcome)
	db.Create(&domain.Post{ThreadID: welcome.ID, AuthorID: alice.ID, Content: "Happy to be here."})
	db.Create(&domain.Post{ThreadID: welcome.ID, AuthorID: carol.ID, Content: "How do I get verified?"})

	db.Create(&domain.Thread{
		AuthorID: bob.ID,
		Title:    "Looking for a data-entry agent",
		Content:  "Budget is flexible, details inside.",
	})

	log.Println("Creating agent listings...")

	for i, spec := range []struct {
		owner *domain.Profile
		name  string
		price float64
		tags  []string
	}{
		{alice, "Research Assistant", 45, []string{"research", "writing"}},
		{alice, "Spreadsheet Automation", 60, []string{"automation", "excel"}},
		{bob, "Translation EN-KZ", 30, []string{"translation"}},
	} {
		db.Create(&domain.Agent{
			OwnerID:     spec.owner.ID,
			Name:        spec.name,
			Description: fmt.Sprintf("Listing #%d seeded for development.", i+1),
			Services:    []string{"consulting"},
			Price:       spec.price,
			Currency:    "USD",
			Tags:        spec.tags,
		})
	}

	log.Println("Creating deals...")

	// A proposal still waiting on the recipient.
	db.Create(&domain.Deal{
		InitiatorID: carol.ID,
		RecipientID: alice.ID,
		Title:       "Hire research assistant",
		Description: "Two weeks of literature review work.",
		DealType:    domain.DealHireAgent,
		Status:      domain.DealPending,
	})

	// A deal mid-negotiation, awaiting the arbiter.
	negotiating := domain.Deal{
		InitiatorID: alice.ID,
		RecipientID: bob.ID,
		Title:       "Translation bundle",
		Description: "Fifty documents, staged delivery.",
		DealType:    domain.DealTransaction,
		Status:      domain.DealNegotiating,
	}
	db.Create(&negotiating)
	accepted := true
	db.Create(&domain.DealResponse{
		DealID:       negotiating.ID,
		UserID:       bob.ID,
		Content:      "Terms look fine, let's proceed.",
		ResponseType: domain.ResponseRecipient,
		IsApproved:   &accepted,
	})

	// A completed deal with a review on record.
	approved := domain.Deal{
		InitiatorID: bob.ID,
		RecipientID: alice.ID,
		Title:       "Spreadsheet cleanup",
		Description: "One-off automation job.",
		DealType:    domain.DealOther,
		Status:      domain.DealApproved,
	}
	db.Create(&approved)
	db.Create(&domain.DealResponse{
		DealID:       approved.ID,
		UserID:       admin.ID,
		Content:      "Both parties agreed, approving.",
		ResponseType: domain.ResponseAdminApproval,
		IsApproved:   &accepted,
	})
	db.Create(&domain.DealReview{
		DealID:     approved.ID,
		ReviewerID: bob.ID,
		RevieweeID: alice.ID,
		Rating:     5,
		ReviewText: "Fast and precise work.",
	})

	log.Println("Seed complete.")
	log.Println("  owner@tradeboard.dev / owner123")
	log.Println("  admin@tradeboard.dev / admin123")
	log.Println("  alice@tradeboard.dev / alice123")
	log.Println("  bob@tradeboard.dev / bob123")
	log.Println("  carol@tradeboard.dev / carol123")
}

func createProfile(db *gorm.DB, username, email, password string, mutate func(*domain.Profile)) *domain.Profile {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password:", err)
	}
	p := &domain.Profile{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if mutate != nil {
		mutate(p)
	}
	if err := db.Create(p).Error; err != nil {
		log.Fatalf("create profile %s: %v", username, err)
	}
	return p
}
