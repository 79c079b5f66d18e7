// internals/features/auth/service/auth_service.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/google/uuid"

	"github.com/geodevmt/app-projeto-vida/internals/configs"
	"github.com/geodevmt/app-projeto-vida/internals/constants"
	authHelper "github.com/geodevmt/app-projeto-vida/internals/features/auth/helper"
	authModel "github.com/geodevmt/app-projeto-vida/internals/features/auth/model"
	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

const passwordResetTTL = 30 * time.Minute

// ============================== REGISTER ==============================
// POST /api/auth/register — cria users + profiles (role student) na mesma tx.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if err := authHelper.ValidateRegisterInput(input.Email, input.Password, input.FullName); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hashed, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar a senha")
	}

	user := authModel.UserModel{
		Email:    input.Email,
		Password: hashed,
		IsActive: true,
	}

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := profileModel.ProfileModel{
			ID:       user.ID,
			FullName: &input.FullName,
			Email:    &user.Email,
			Role:     constants.RoleStudent,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return helpers.JsonError(c, fiber.StatusConflict, "Email já cadastrado")
		}
		log.Printf("[register] tx failed: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar a conta")
	}

	return helpers.JsonCreated(c, "Conta criada com sucesso", fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": input.FullName,
		"role":      constants.RoleStudent,
	})
}

// =============================== LOGIN ===============================
// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user authModel.UserModel
	if err := db.WithContext(c.Context()).Where("email = ?", input.Email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Email ou senha incorretos")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email ou senha incorretos")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Conta desativada")
	}

	role, fullName, err := loadRoleAndName(db, c, user.ID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar perfil")
	}

	return issueTokens(c, db, user, role, fullName)
}

func loadRoleAndName(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID) (role, fullName string, err error) {
	var p struct {
		Role     string
		FullName *string
	}
	err = db.WithContext(c.Context()).
		Table("profiles").Select("role, full_name").
		Where("id = ?", userID).Take(&p).Error
	if err != nil {
		return "", "", err
	}
	if p.FullName != nil {
		fullName = *p.FullName
	}
	return p.Role, fullName, nil
}

// =============================== LOGOUT ===============================
// POST /api/auth/logout — revoga o refresh ativo e limpa o cookie.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	if raw := helpers.GetRefreshTokenFromCookie(c); raw != "" {
		if err := revokeRefreshByRawToken(db, raw); err != nil {
			log.Printf("[logout] revoke failed: %v", err)
		}
	}
	clearRefreshCookie(c)
	return helpers.JsonOK(c, "Logout realizado com sucesso", nil)
}

// ================================= ME =================================
// GET /api/auth/me — dados básicos a partir do token já validado.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var out struct {
		ID       uuid.UUID `json:"id"`
		Email    *string   `json:"email"`
		FullName *string   `json:"full_name"`
		Role     string    `json:"role"`
	}
	if err := db.WithContext(c.Context()).
		Table("profiles").Select("id, email, full_name, role").
		Where("id = ?", userID).Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Perfil não encontrado")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helpers.JsonOK(c, "OK", out)
}

// ========================= FORGOT / RESET =========================
// POST /api/auth/forgot-password — gera token de uso único e envia por email.
// Resposta é sempre 200 para não revelar quais emails existem.
func ForgotPassword(db *gorm.DB, mailSvc mailer.EmailService, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if !authHelper.IsValidEmail(input.Email) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Email inválido")
	}

	genericOK := func() error {
		return helpers.JsonOK(c, "Se o email existir, enviaremos instruções de redefinição.", nil)
	}

	var user authModel.UserModel
	if err := db.WithContext(c.Context()).Where("email = ?", input.Email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return genericOK()
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	rawToken, err := randomToken()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	pr := authModel.PasswordResetModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(rawToken, refreshSecret),
		ExpiresAt: nowUTC().Add(passwordResetTTL),
	}
	if err := db.WithContext(c.Context()).Create(&pr).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar o pedido")
	}

	resetURL := fmt.Sprintf("%s/resetar-senha?token=%s", strings.TrimRight(configs.AppBaseURL, "/"), rawToken)
	msg := mailer.Message{
		To:          mailAddress(user.Email),
		Subject:     "Redefinição de senha - Projeto de Vida",
		TextContent: "Para redefinir sua senha, acesse: " + resetURL + "\n\nO link expira em 30 minutos.",
		HTMLContent: fmt.Sprintf(`<p>Para redefinir sua senha, <a href="%s">clique aqui</a>.</p><p>O link expira em 30 minutos.</p>`, resetURL),
	}
	if err := mailSvc.Send(c.Context(), msg); err != nil {
		log.Printf("[forgot-password] send failed: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao enviar o email")
	}

	return genericOK()
}

// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if strings.TrimSpace(input.Token) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Token é obrigatório")
	}
	if len(input.Password) < 8 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "A senha deve ter pelo menos 8 caracteres")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	h := computeRefreshHash(input.Token, refreshSecret)

	var pr authModel.PasswordResetModel
	if err := db.WithContext(c.Context()).
		Where("token = ? AND used_at IS NULL AND expires_at > NOW()", h).
		Take(&pr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Token inválido ou expirado")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	hashed, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar a senha")
	}

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&authModel.UserModel{}).
			Where("id = ?", pr.UserID).
			Update("password", hashed).Error; err != nil {
			return err
		}
		if err := tx.Model(&authModel.PasswordResetModel{}).
			Where("id = ?", pr.ID).
			Update("used_at", nowUTC()).Error; err != nil {
			return err
		}
		// sessões antigas caem junto com a senha
		return tx.Model(&authModel.RefreshTokenModel{}).
			Where("user_id = ? AND revoked_at IS NULL", pr.UserID).
			Update("revoked_at", nowUTC()).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao redefinir a senha")
	}

	return helpers.JsonOK(c, "Senha redefinida com sucesso", nil)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func mailAddress(email string) mail.Address {
	return mail.Address{Address: email}
}
