package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Rjvaldo21/correspondence/config"
	"github.com/Rjvaldo21/correspondence/dto"
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"
	"github.com/Rjvaldo21/correspondence/utils/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return utils.BadRequest(c, "Email dan password wajib diisi", nil)
	}

	var user models.User
	err := h.db.Preload("Groups").Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pesan sama dengan password salah, jangan bocorkan akun mana yang ada
			return utils.Unauthorized(c, "Email atau password salah")
		}
		return utils.InternalServerError(c, "Gagal memproses login")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.Unauthorized(c, "Email atau password salah")
	}

	accessToken, claims, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}

	resp := dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    claims.ExpiresAt.Time,
		User:         dto.NewUserSummary(&user),
	}
	return utils.OK(c, "Login berhasil", resp)
}

// Refresh - POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "Refresh token tidak valid")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return utils.Unauthorized(c, "Refresh token tidak valid")
	}

	accessToken, newClaims, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.InternalServerError(c, "Gagal membuat token")
	}

	resp := dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    newClaims.ExpiresAt.Time,
	}
	return utils.OK(c, "Token diperbarui", resp)
}

// RequestPasswordReset - POST /api/auth/forgot-password
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return utils.BadRequest(c, "email is required", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.BadRequest(c, "invalid email format", nil)
	}

	const neutralMsg = "If the email exists, a reset link has been sent"

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.OK(c, neutralMsg, nil)
		}
		return utils.InternalServerError(c, "failed to process request")
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		return utils.InternalServerError(c, "failed to generate token")
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(models.PasswordResetTokenTTL),
	}
	if err := h.db.Create(&resetToken).Error; err != nil {
		return utils.InternalServerError(c, "failed to store token")
	}

	resetLink := buildResetLink(rawToken)
	mailClient := mailer.NewClient(config.LoadEmailConfig())
	if err := mailClient.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		return utils.InternalServerError(c, "failed to send reset email")
	}

	return utils.OK(c, neutralMsg, nil)
}

// ResetPassword - POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetSubmission
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body", err.Error())
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return utils.BadRequest(c, "token is required", nil)
	}
	if len(req.Password) < 8 {
		return utils.BadRequest(c, "password must be at least 8 characters", nil)
	}
	if req.Password != req.ConfirmPassword {
		return utils.BadRequest(c, "password confirmation does not match", nil)
	}

	sum := sha256.Sum256([]byte(req.Token))
	tokenHash := hex.EncodeToString(sum[:])

	var token models.PasswordResetToken
	if err := h.db.Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "invalid or expired token", nil)
		}
		return utils.InternalServerError(c, "failed to process request")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.InternalServerError(c, "failed to hash password")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := token.Consume(tx, time.Now()); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password_hash", passwordHash).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrPasswordResetTokenExpired) ||
			errors.Is(err, models.ErrPasswordResetTokenUsed) {
			return utils.BadRequest(c, "invalid or expired token", nil)
		}
		return utils.InternalServerError(c, "failed to reset password")
	}

	return utils.OK(c, "Password berhasil diubah", nil)
}

func generateResetToken() (string, string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(tokenBytes)
	sum := sha256.Sum256([]byte(raw))
	return raw, hex.EncodeToString(sum[:]), nil
}

func buildResetLink(token string) string {
	base := os.Getenv("PASSWORD_RESET_URL")
	if base == "" {
		base = "/auth/reset-password"
	}

	escapedToken := url.QueryEscape(token)
	if strings.Contains(base, "?") {
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			return base + "token=" + escapedToken
		}
		return base + "&token=" + escapedToken
	}
	return base + "?token=" + escapedToken
}
