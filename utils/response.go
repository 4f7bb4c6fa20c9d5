package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIResponse defines the common structure returned by the API.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// SuccessResponse sends a successful JSON response with the provided status
// code, message and data.
func SuccessResponse(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}

	return c.Status(statusCode).JSON(APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends an error JSON response with the provided status code,
// message and error details.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, errDetail interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusInternalServerError
	}

	return c.Status(statusCode).JSON(APIResponse{
		Status:  "error",
		Message: message,
		Errors:  errDetail,
	})
}

// PaginationMeta menyertai response list yang di-page.
type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type paginatedBody struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// PaginatedResponse sends a successful JSON response carrying a page of
// results plus pagination metadata.
func PaginatedResponse(c *fiber.Ctx, statusCode int, message string, data interface{}, meta PaginationMeta) error {
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}

	return c.Status(statusCode).JSON(paginatedBody{
		Status:  "success",
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Shorthand helpers dipakai hampir semua handler.

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessResponse(c, fiber.StatusOK, message, data)
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessResponse(c, fiber.StatusCreated, message, data)
}

func BadRequest(c *fiber.Ctx, message string, errDetail interface{}) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message, errDetail)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusUnauthorized, message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusForbidden, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string, errDetail interface{}) error {
	return ErrorResponse(c, fiber.StatusConflict, message, errDetail)
}

func UnprocessableEntity(c *fiber.Ctx, message string, errDetail interface{}) error {
	return ErrorResponse(c, fiber.StatusUnprocessableEntity, message, errDetail)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, message, nil)
}

// IsDuplicateError mendeteksi pelanggaran unique constraint dari driver
// MySQL maupun SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
