package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/services"
	"lms/utils"

	"golang.org/x/crypto/bcrypt"
)

// Bulk user import from a CSV file. Usage:
//
//	go run scripts/importUsers.go users.csv
//
// Expected columns: full_name, email, phone, age, sex, department, position.
// Rows are keyed by email; existing users are updated, new ones get a
// generated password and auto-enrollment rules applied.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "users.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}

	db := database.Database.Db

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		email := strings.ToLower(getField(row, headerIndex, "email"))
		name := getField(row, headerIndex, "full_name")
		if email == "" || name == "" {
			skipped++
			continue
		}

		dept := resolveDepartment(getField(row, headerIndex, "department"))

		var user models.User
		result := db.Where("email = ?", email).First(&user)

		if result.Error != nil {
			tempPassword := utils.GenerateRandomPassword(12)
			hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
			if err != nil {
				log.Printf("Row %d: error hashing password: %v", i+2, err)
				skipped++
				continue
			}
			user = models.User{Name: name, Email: email, Password: string(hashed)}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Row %d: error inserting user %s: %v", i+2, email, err)
				skipped++
				continue
			}
			inserted++
			log.Printf("Created %s (temp password: %s)", email, tempPassword)
		} else {
			user.Name = name
			db.Save(&user)
			updated++
		}

		var profile models.Profile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			profile = models.Profile{UserID: user.ID, Role: models.RoleLearner}
		}
		profile.Phone = getField(row, headerIndex, "phone")
		profile.Position = getField(row, headerIndex, "position")
		if age := parseInt(getField(row, headerIndex, "age")); age > 0 {
			profile.Age = &age
		}
		if sex := strings.ToUpper(getField(row, headerIndex, "sex")); sex == "M" || sex == "F" || sex == "O" {
			profile.Sex = sex
		}
		if dept != nil {
			profile.DepartmentID = &dept.ID
		}
		if err := db.Save(&profile).Error; err != nil {
			log.Printf("Row %d: error saving profile for %s: %v", i+2, email, err)
			continue
		}

		if result.Error != nil {
			if _, err := services.AssignByRules(db, &user); err != nil {
				log.Printf("Row %d: error applying assignment rules for %s: %v", i+2, email, err)
			}
		}
	}

	log.Printf("Import complete. Inserted: %d, Updated: %d, Skipped: %d", inserted, updated, skipped)
}

func resolveDepartment(name string) *models.Department {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	db := database.Database.Db
	var dept models.Department
	if err := db.Where("name = ?", name).First(&dept).Error; err != nil {
		dept = models.Department{Name: name}
		if err := db.Create(&dept).Error; err != nil {
			log.Printf("Error creating department %s: %v", name, err)
			return nil
		}
	}
	return &dept
}

func getField(row []string, headerIndex map[string]int, key string) string {
	idx, ok := headerIndex[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
