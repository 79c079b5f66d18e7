// internals/features/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/configs"
	authModel "github.com/geodevmt/app-projeto-vida/internals/features/auth/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET não está definido")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET não está definido")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func buildAccessClaims(userID uuid.UUID, email, role, fullName string, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       userID.String(),
		"email":     email,
		"role":      role,
		"full_name": fullName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func setRefreshCookie(c *fiber.Ctx, refresh string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Path:     "/api/auth",
		Expires:  now.Add(refreshTTLDefault),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/auth",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// issueTokens emite o par access/refresh, persiste o hash do refresh e
// seta o cookie. Devolve o corpo padrão de login.
func issueTokens(c *fiber.Ctx, db *gorm.DB, user authModel.UserModel, role, fullName string) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	now := nowUTC()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user.ID, user.Email, role, fullName, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar access token")
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar refresh token")
	}

	if err := db.Create(&authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao persistir sessão")
	}

	setRefreshCookie(c, refresh, now)

	return helpers.JsonOK(c, "Login realizado com sucesso", fiber.Map{
		"access_token": access,
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"role":      role,
			"full_name": fullName,
		},
	})
}

// parseRefreshToken valida assinatura (somente HS256) e extrai o sub.
func parseRefreshToken(raw, secret string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !tok.Valid {
		return uuid.Nil, errors.New("token inválido")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := helpers.GetRefreshTokenFromCookie(c)
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token ausente")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, err := parseRefreshToken(refreshCookie, refreshSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido")
	}

	// hash precisa existir e estar ativo no banco
	h := computeRefreshHash(refreshCookie, refreshSecret)
	var rt authModel.RefreshTokenModel
	if err := db.WithContext(c.Context()).
		Where("token = ? AND revoked_at IS NULL AND expires_at > NOW()", h).
		Take(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token não reconhecido")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var user authModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Conta não encontrada")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Conta desativada")
	}

	role, fullName, err := loadRoleAndName(db, c, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar perfil")
	}

	// ROTATE: revoga o antigo antes de emitir o novo
	if err := revokeRefreshByID(db, rt.ID); err != nil {
		log.Printf("[refresh] revoke old token failed: %v", err)
	}

	return issueTokens(c, db, user, role, fullName)
}

func revokeRefreshByID(db *gorm.DB, id uuid.UUID) error {
	res := db.Model(&authModel.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", nowUTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func revokeRefreshByRawToken(db *gorm.DB, raw string) error {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return err
	}
	h := computeRefreshHash(raw, refreshSecret)
	return db.Model(&authModel.RefreshTokenModel{}).
		Where("token = ? AND revoked_at IS NULL", h).
		Update("revoked_at", nowUTC()).Error
}
