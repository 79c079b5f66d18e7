// file: internals/services/mailer/mailer.go
package mailer

import (
	"context"
	"log"
	"net/mail"

	"github.com/geodevmt/app-projeto-vida/internals/configs"
)

type Message struct {
	To          mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

// EmailService envia uma mensagem e devolve o erro do provedor, que o
// caller repassa na resposta HTTP. Sem retry.
type EmailService interface {
	Send(ctx context.Context, msg Message) error
}

// NewFromEnv escolhe o provedor: Sendgrid quando há API key, console no
// ambiente de desenvolvimento.
func NewFromEnv() EmailService {
	if configs.SendgridAPIKey != "" {
		return NewSendgridService()
	}
	log.Println("[WARN] mailer em modo console")
	return NewConsoleService()
}
