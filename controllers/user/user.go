package userController

import (
	"errors"
	"log"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserPayload is the admin create/edit form for a user plus profile.
type UserPayload struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Age            *int   `json:"age"`
	Sex            string `json:"sex"`
	Position       string `json:"position"`
	DepartmentID   *uint  `json:"department_id"`
	DepartmentName string `json:"department"`
	Role           string `json:"role"`
}

// resolveDepartment picks the department by id when given, otherwise
// get-or-creates by name. Returns nil for neither.
func resolveDepartment(db *gorm.DB, depID *uint, depName string) (*models.Department, error) {
	if depID != nil {
		var dept models.Department
		if err := db.First(&dept, *depID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &dept, nil
	}
	depName = strings.TrimSpace(depName)
	if depName == "" {
		return nil, nil
	}
	var dept models.Department
	err := db.Where("name = ?", depName).First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dept = models.Department{Name: depName}
		err = db.Create(&dept).Error
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func applyProfilePayload(profile *models.Profile, reqData *UserPayload, dept *models.Department) {
	profile.Phone = strings.TrimSpace(reqData.Phone)
	profile.Position = strings.TrimSpace(reqData.Position)
	if reqData.Age != nil && *reqData.Age > 0 {
		profile.Age = reqData.Age
	}
	sex := strings.ToUpper(strings.TrimSpace(reqData.Sex))
	if sex == "M" || sex == "F" || sex == "O" {
		profile.Sex = sex
	}
	if dept != nil {
		profile.DepartmentID = &dept.ID
	} else {
		profile.DepartmentID = nil
	}
	if models.IsValidRole(reqData.Role) {
		profile.Role = reqData.Role
	}
}

// GetUsers lists users with their profiles, filtered by free-text search and
// department name.
func GetUsers(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	deptName := strings.TrimSpace(c.Query("dept"))

	db := database.Database.Db

	query := db.Model(&models.User{}).Order("email asc")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.
			Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
			Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(profiles.phone) LIKE ? OR LOWER(profiles.position) LIKE ?",
				like, like, like, like)
	}
	if deptName != "" {
		query = query.
			Joins("JOIN profiles AS p2 ON p2.user_id = users.id").
			Joins("JOIN departments ON departments.id = p2.department_id").
			Where("departments.name = ?", deptName)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	// Attach profiles in one pass
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	var profiles []models.Profile
	db.Preload("Department").Where("user_id IN ?", ids).Find(&profiles)
	profileMap := make(map[uint]models.Profile, len(profiles))
	for _, p := range profiles {
		profileMap[p.UserID] = p
	}

	type userRow struct {
		models.User
		Profile *models.Profile `json:"profile,omitempty"`
	}
	rows := make([]userRow, len(users))
	for i, u := range users {
		u.Password = ""
		rows[i] = userRow{User: u}
		if p, ok := profileMap[u.ID]; ok {
			rows[i].Profile = &p
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CreateUser provisions a user with a generated password and a profile, then
// applies active assignment rules so department/role courses land immediately.
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*UserPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	email := strings.ToLower(strings.TrimSpace(reqData.Email))
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	tempPassword := utils.GenerateRandomPassword(12)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	dept, err := resolveDepartment(db, reqData.DepartmentID, reqData.DepartmentName)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve department!", nil)
	}

	user := models.User{
		Name:     strings.TrimSpace(reqData.FullName),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	profile := models.Profile{UserID: user.ID, Role: models.RoleLearner}
	applyProfilePayload(&profile, reqData, dept)
	if err := db.Create(&profile).Error; err != nil {
		log.Printf("Error creating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
	}

	if _, err := services.AssignByRules(db, &user); err != nil {
		log.Printf("Error applying assignment rules for user %d: %v", user.ID, err)
	}

	utils.SendWelcomeEmail(user.Email, user.Name, tempPassword)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created.", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateUser edits a user and their profile; the profile is created on demand
// for users that predate profiles.
func UpdateUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)
	reqData, ok := c.Locals("validatedUser").(*UserPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if name := strings.TrimSpace(reqData.FullName); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(reqData.Email)); email != "" {
		user.Email = email
	}
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	dept, err := resolveDepartment(db, reqData.DepartmentID, reqData.DepartmentName)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve department!", nil)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		profile = models.Profile{UserID: user.ID, Role: models.RoleLearner}
	}
	applyProfilePayload(&profile, reqData, dept)
	if err := db.Save(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated.", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// DeleteUser removes a user together with their profile.
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	db.Where("user_id = ?", user.ID).Delete(&models.Profile{})
	if err := db.Delete(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted.", nil)
}
