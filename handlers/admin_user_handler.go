package handlers

import (
	"errors"
	"strconv"
	"strings"

	userdto "github.com/Rjvaldo21/correspondence/dto/users"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminUserHandler struct {
	db *gorm.DB
}

func NewAdminUserHandler(db *gorm.DB) *AdminUserHandler {
	return &AdminUserHandler{db: db}
}

// resolveGroups memetakan nama group ke record, membuat yang belum ada.
func (h *AdminUserHandler) resolveGroups(names []string) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var g models.Group
		err := h.db.Where("name = ?", name).FirstOrCreate(&g, models.Group{Name: name}).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Create API
func (h *AdminUserHandler) AdminCreateUser(c *fiber.Ctx) error {
	var req userdto.AdminUserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "invalid request body", err.Error())
	}

	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "validation error", validationErrors)
	}

	passwordHash, err := utils.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to hash password", nil)
	}

	groups, err := h.resolveGroups(req.Groups)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to resolve groups", nil)
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: passwordHash,
		Role:         req.Role,
		Jabatan:      strings.TrimSpace(req.Jabatan),
		Groups:       groups,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if utils.IsDuplicateError(err) {
			return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "username or email already exists", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create user", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "user created successfully", userdto.NewAdminUserResponse(user))
}

// READ ONE
func (h *AdminUserHandler) AdminGetUserByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var user models.User
	if err := h.db.Preload("Groups").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve user", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "user retrieved successfully", userdto.NewAdminUserResponse(user))
}

// LIST + FILTER
func (h *AdminUserHandler) AdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	role := strings.TrimSpace(c.Query("role", ""))
	q := strings.TrimSpace(c.Query("q", ""))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	tx := h.db.Model(&models.User{})
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			h.db.Where("username LIKE ?", like).
				Or("email LIKE ?", like).
				Or("first_name LIKE ?", like).
				Or("last_name LIKE ?", like),
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to count users", err.Error())
	}

	var users []models.User
	if err := tx.Preload("Groups").Order("id DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve users", err.Error())
	}

	responses := make([]userdto.AdminUserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userdto.NewAdminUserResponse(users[i]))
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.PaginatedResponse(c, fiber.StatusOK, "users retrieved successfully", responses, meta)
}

// Update API(partial)
func (h *AdminUserHandler) AdminUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var user models.User
	if err := h.db.Preload("Groups").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve user", err.Error())
	}

	var req userdto.AdminUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "invalid request body", err.Error())
	}

	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "validation error", validationErrors)
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Jabatan != nil {
		user.Jabatan = strings.TrimSpace(*req.Jabatan)
	}
	if req.Password != nil {
		pwd := strings.TrimSpace(*req.Password)
		if pwd != "" {
			hash, err := utils.HashPassword(pwd)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to hash password", nil)
			}
			user.PasswordHash = hash
		}
	}

	if req.Groups != nil {
		groups, err := h.resolveGroups(*req.Groups)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to resolve groups", nil)
		}
		if err := h.db.Model(&user).Association("Groups").Replace(groups); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update groups", nil)
		}
		user.Groups = groups
	}

	if err := h.db.Save(&user).Error; err != nil {
		if utils.IsDuplicateError(err) {
			return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "username or email already exists", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update user", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "user updated successfully", userdto.NewAdminUserResponse(user))
}

// Delete User API
func (h *AdminUserHandler) AdminDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	result := h.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete user", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "user deleted successfully", nil)
}
