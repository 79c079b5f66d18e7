// file: internals/helpers/from_fiber_error.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError converte um erro vindo de serviço (normalmente
// *fiber.Error) na resposta JSON padrão. Qualquer outro erro vira 500
// com mensagem genérica, sem vazar detalhe interno.
func FromFiberError(c *fiber.Ctx, err error, fallbackMsg string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if fallbackMsg == "" {
		fallbackMsg = fiber.ErrInternalServerError.Message
	}
	return JsonError(c, fiber.StatusInternalServerError, fallbackMsg)
}
