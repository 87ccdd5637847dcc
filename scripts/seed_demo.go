// Seeds a demo teacher account and a sample fractions assignment.
//
// Intended for local development and demos only; registration through the
// API is the normal path.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"guidly_backend/internal/config"
	"guidly_backend/internal/model"
	"guidly_backend/internal/util"
	"guidly_backend/pkg/database"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Database config.DatabaseConfig `yaml:"database"`
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var existing model.User
	if err := db.Where("email = ?", "demo@guidly.app").First(&existing).Error; err == nil {
		log.Println("demo teacher already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	teacher := model.User{
		Name:     "Demo Teacher",
		Email:    "demo@guidly.app",
		Password: string(hashed),
		Role:     model.Teacher,
	}
	if err := db.Create(&teacher).Error; err != nil {
		log.Fatalf("create teacher: %v", err)
	}

	assignment := model.Assignment{
		TeacherID: teacher.ID,
		Title:     "Fractions warm-up",
		Topic:     "fractions",
		LinkSlug:  util.GenerateLinkSlug(),
		ClassCode: util.GenerateClassCode(),
	}
	if err := db.Create(&assignment).Error; err != nil {
		log.Fatalf("create assignment: %v", err)
	}

	questions := []model.Question{
		{
			AssignmentID:  assignment.ID,
			QuestionText:  "What is 1/4 + 1/2?",
			CorrectAnswer: "3/4",
			QuestionType:  model.QuestionTypeShortAnswer,
			Position:      1,
		},
		{
			AssignmentID:  assignment.ID,
			QuestionText:  "What is 2/3 of 12?",
			CorrectAnswer: "8",
			QuestionType:  model.QuestionTypeShortAnswer,
			Position:      2,
		},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("create question: %v", err)
		}
	}

	var addingFractions model.Misconception
	if err := db.Where("topic = ? AND category = ?", "fractions", "Adding fractions").
		First(&addingFractions).Error; err == nil {
		pattern := model.QuestionMisconception{
			QuestionID:         questions[0].ID,
			MisconceptionID:    addingFractions.ID,
			WrongAnswerPattern: "2/6",
			Explanation:        "When adding fractions you need a common denominator first. 1/4 + 1/2 = 1/4 + 2/4 = 3/4.",
			FollowUpQuestion:   "What is 1/4 + 1/4?",
			FollowUpAnswer:     "1/2",
			Position:           0,
		}
		if err := db.Create(&pattern).Error; err != nil {
			log.Fatalf("create pattern: %v", err)
		}
	}

	log.Printf("Seeded demo assignment: slug=%s classCode=%s login=demo@guidly.app/demo-password",
		assignment.LinkSlug, assignment.ClassCode)
}
