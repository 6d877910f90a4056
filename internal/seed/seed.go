// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"medlex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumEntries  int
	ShouldClean bool
}

// DefaultPassword is the password set on every seeded account.
const DefaultPassword = "Password123!"

var (
	terms = []string{
		"tachycardia", "bradycardia", "hypertension", "hypotension", "arrhythmia",
		"myocarditis", "pericarditis", "endocarditis", "angioplasty", "stenosis",
		"embolism", "thrombosis", "ischemia", "infarction", "aneurysm",
		"dyspnea", "apnea", "pneumothorax", "bronchitis", "emphysema",
		"nephritis", "cystitis", "hepatitis", "gastritis", "pancreatitis",
		"dermatitis", "psoriasis", "melanoma", "carcinoma", "lymphoma",
		"anemia", "leukemia", "hemophilia", "sepsis", "edema",
		"neuropathy", "myopathy", "arthropathy", "osteoporosis", "scoliosis",
		"migraine", "vertigo", "syncope", "aphasia", "ataxia",
		"glaucoma", "cataract", "tinnitus", "rhinitis", "laryngitis",
	}

	partsOfSpeech = []string{"noun", "noun", "noun", "adjective", "verb"}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d dictionary entries...", opts.NumUsers, opts.NumEntries)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	entries, err := createEntries(db, opts.NumEntries)
	if err != nil {
		return fmt.Errorf("failed to create entries: %w", err)
	}
	log.Printf("✓ %d dictionary entries created", len(entries))

	if err := createPendingRequests(db, users, entries); err != nil {
		return fmt.Errorf("failed to create pending requests: %w", err)
	}
	log.Println("✓ pending review queues populated")

	return nil
}

// ClearAll removes all seeded rows. Request tables go first so entry and user
// deletes never trip foreign keys.
func ClearAll(db *gorm.DB) error {
	tables := []interface{}{
		&models.EntryUpdateRequest{},
		&models.EntryDeleteRequest{},
		&models.RoleChangeRequest{},
		&models.Entry{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// createUsers seeds one fixed account per tier plus random regular users so
// every permission path is exercisable straight after seeding.
func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := []models.User{
		{Name: "Seed Admin", Email: "admin@medlex.dev", Password: string(hashed), Role: models.RoleAdmin},
		{Name: "Seed Editor", Email: "editor@medlex.dev", Password: string(hashed), Role: models.RoleEditor},
	}

	for i := 0; i < count; i++ {
		users = append(users, models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Role:     models.RoleUser,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createEntries(db *gorm.DB, count int) ([]models.Entry, error) {
	if count > len(terms) {
		count = len(terms)
	}

	entries := make([]models.Entry, 0, count)
	for i := 0; i < count; i++ {
		term := terms[i]
		entries = append(entries, models.Entry{
			Term:         term,
			Definition:   gofakeit.Sentence(12),
			Phonetics:    fmt.Sprintf("/%s/", term),
			PartOfSpeech: partsOfSpeech[rand.Intn(len(partsOfSpeech))],
		})
	}

	if err := db.Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// createPendingRequests queues a few update, delete, and role-change requests
// from regular users so the reviewer endpoints have data to show.
func createPendingRequests(db *gorm.DB, users []models.User, entries []models.Entry) error {
	var regulars []models.User
	for _, u := range users {
		if u.Role == models.RoleUser {
			regulars = append(regulars, u)
		}
	}
	if len(regulars) == 0 || len(entries) == 0 {
		return nil
	}

	for i := 0; i < 5 && i < len(entries); i++ {
		requester := regulars[rand.Intn(len(regulars))]
		entry := entries[i]
		req := models.EntryUpdateRequest{
			Term:         entry.Term,
			Definition:   gofakeit.Sentence(10),
			Phonetics:    entry.Phonetics,
			PartOfSpeech: entry.PartOfSpeech,
			UserID:       &requester.ID,
			EntryID:      &entry.ID,
		}
		if err := db.Create(&req).Error; err != nil {
			return err
		}
	}

	for i := 0; i < 3 && i < len(entries); i++ {
		requester := regulars[rand.Intn(len(regulars))]
		entry := entries[len(entries)-1-i]
		req := models.EntryDeleteRequest{
			Term:    entry.Term,
			UserID:  &requester.ID,
			EntryID: &entry.ID,
		}
		if err := db.Create(&req).Error; err != nil {
			return err
		}
	}

	for i := 0; i < 2 && i < len(regulars); i++ {
		req := models.RoleChangeRequest{
			UserID:        regulars[i].ID,
			CurrentRole:   models.RoleUser,
			RequestedRole: models.RoleEditor,
		}
		if err := db.Create(&req).Error; err != nil {
			return err
		}
	}

	return nil
}
