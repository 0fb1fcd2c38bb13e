package seeds

import (
	"log"

	"github.com/shriya7756/campusconnect-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run populates the database with demo accounts and sample content.
// Safe to run twice: it bails if any user already exists.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already present, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	alice := models.User{
		Name:     "Alice Chen",
		Email:    "alice@campus.edu",
		Password: string(hash),
		Year:     "3rd Year",
		Major:    "Computer Science",
	}
	bob := models.User{
		Name:     "Bob Martinez",
		Email:    "bob@campus.edu",
		Password: string(hash),
		Year:     "2nd Year",
		Major:    "Electronics",
	}
	if err := db.Create(&alice).Error; err != nil {
		return err
	}
	if err := db.Create(&bob).Error; err != nil {
		return err
	}

	notes := []models.Note{
		{
			Title:       "Operating Systems Unit 3 Summary",
			Description: "Condensed notes on process scheduling, covering FCFS, SJF, round robin and priority scheduling with solved examples.",
			Subject:     "Operating Systems",
			Tags:        []string{"scheduling", "processes", "exam-prep"},
			FileURL:     "https://cdn.campus.edu/notes/os-unit3.pdf",
			FileType:    "pdf",
			FileSize:    "1.2 MB",
			AuthorID:    alice.ID,
		},
		{
			Title:       "DBMS Normalization Cheat Sheet",
			Description: "1NF through BCNF with worked decompositions and common exam traps.",
			Subject:     "Databases",
			Tags:        []string{"normalization", "sql"},
			FileURL:     "https://cdn.campus.edu/notes/dbms-normalization.pdf",
			FileType:    "pdf",
			FileSize:    "640 KB",
			AuthorID:    bob.ID,
		},
	}
	for i := range notes {
		if err := db.Create(&notes[i]).Error; err != nil {
			return err
		}
	}

	questions := []models.Question{
		{
			Title:       "How do I reverse a linked list recursively?",
			Description: "I understand the iterative version but the recursive one keeps losing nodes. What invariant should the recursion maintain?",
			Subject:     "Data Structures",
			Tags:        []string{"linked-list", "recursion"},
			AuthorID:    bob.ID,
		},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			return err
		}
	}

	items := []models.ExchangeItem{
		{
			Title:       "CLRS Introduction to Algorithms, 3rd ed.",
			Description: "Lightly used, no markings. Great for the algorithms course.",
			Category:    "Books",
			Price:       450,
			Condition:   "Good",
			Tags:        []string{"algorithms", "textbook"},
			Contact:     models.ExchangeContact{Email: "alice@campus.edu", Location: "North Hostel"},
			SellerID:    alice.ID,
		},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d users, %d notes, %d questions, %d exchange items",
		2, len(notes), len(questions), len(items))
	return nil
}
