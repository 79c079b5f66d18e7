// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/configs"
	helper "github.com/geodevmt/app-projeto-vida/internals/helpers"
)

// leeway para clock skew entre emissor e validador
const expLeeway = 30 * time.Second

// AuthMiddleware valida o access token e carrega o papel persistido no
// perfil a cada request. Qualquer falha na leitura do papel derruba a
// request com 401 (fail closed): página protegida nunca renderiza sem
// papel confirmado.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token ausente")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET vazio")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
		}

		if err := validateTokenExpiry(claims, expLeeway); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token expirado")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token sem user ID válido")
		}

		// Papel vem do banco, não do claim: é o valor persistido que decide
		// o que a conta pode acessar.
		var role string
		err = db.WithContext(c.Context()).
			Table("profiles").
			Select("role").
			Where("id = ?", userID).
			Take(&role).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Perfil não encontrado")
			}
			log.Println("[ERROR] leitura de papel falhou:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Não foi possível verificar o papel da conta")
		}

		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocUserRole, role)
		return c.Next()
	}
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("claim exp ausente")
	}
	if time.Now().After(time.Unix(int64(exp), 0).Add(leeway)) {
		return errors.New("token expirado")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("sub inválido")
	}
	return id, nil
}
