package userController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var importColumns = []string{"full_name", "email", "phone", "age", "sex", "department", "position"}

// ImportUsers bulk-creates or updates users from an uploaded CSV keyed by
// email. New users get a generated password and have assignment rules applied.
func ImportUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read file!", nil)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not parse CSV file!", nil)
	}
	if len(records) < 2 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is empty or has only headers!", nil)
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}

	var missing []string
	for _, col := range importColumns {
		if _, ok := headerIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Missing columns: "+strings.Join(missing, ", "), nil)
	}

	field := func(row []string, name string) string {
		idx := headerIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	created, updated := 0, 0

	for _, row := range records[1:] {
		email := strings.ToLower(field(row, "email"))
		if email == "" {
			continue
		}

		var user models.User
		wasCreated := false
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			tempPassword := utils.GenerateRandomPassword(12)
			hashed, herr := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
			if herr != nil {
				log.Printf("Error hashing password for %s: %v", email, herr)
				continue
			}
			user = models.User{
				Name:     field(row, "full_name"),
				Email:    email,
				Password: string(hashed),
			}
			if cerr := db.Create(&user).Error; cerr != nil {
				log.Printf("Error importing user %s: %v", email, cerr)
				continue
			}
			wasCreated = true
			created++
		} else {
			if name := field(row, "full_name"); name != "" {
				user.Name = name
			}
			db.Save(&user)
			updated++
		}

		dept, derr := resolveDepartment(db, nil, field(row, "department"))
		if derr != nil {
			log.Printf("Error resolving department for %s: %v", email, derr)
		}

		var profile models.Profile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			profile = models.Profile{UserID: user.ID, Role: models.RoleLearner}
		}
		profile.Phone = field(row, "phone")
		profile.Position = field(row, "position")
		if age, aerr := strconv.Atoi(field(row, "age")); aerr == nil && age > 0 {
			profile.Age = &age
		}
		sex := strings.ToUpper(field(row, "sex"))
		if sex == "M" || sex == "F" || sex == "O" {
			profile.Sex = sex
		}
		if dept != nil {
			profile.DepartmentID = &dept.ID
		}
		db.Save(&profile)

		if wasCreated {
			if _, rerr := services.AssignByRules(db, &user); rerr != nil {
				log.Printf("Error applying assignment rules for user %d: %v", user.ID, rerr)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		fmt.Sprintf("Import OK. Created: %d, Updated: %d.", created, updated), fiber.Map{
			"created": created,
			"updated": updated,
		})
}

// ExportUsers streams all users and their profile fields as CSV. The export
// carries the import columns plus the role.
func ExportUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	var profiles []models.Profile
	if err := db.Preload("Department").Find(&profiles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export users!", nil)
	}

	ids := make([]uint, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	var users []models.User
	db.Where("id IN ?", ids).Find(&users)
	userMap := make(map[uint]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(append(append([]string{}, importColumns...), "role"))

	for _, p := range profiles {
		u, ok := userMap[p.UserID]
		if !ok {
			continue
		}
		age := ""
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		deptName := ""
		if p.Department != nil {
			deptName = p.Department.Name
		}
		w.Write([]string{u.Name, u.Email, p.Phone, age, p.Sex, deptName, p.Position, p.Role})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export users!", nil)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="users_export.csv"`)
	return c.Send(buf.Bytes())
}
