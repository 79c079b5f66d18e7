// file: internals/services/mailer/console.go
package mailer

import (
	"context"
	"log"
	"sync"
)

// consoleService imprime a mensagem no log e guarda uma cópia para os
// testes inspecionarem.
type consoleService struct {
	mu   sync.Mutex
	sent []Message
}

var _ EmailService = (*consoleService)(nil)

func NewConsoleService() *consoleService {
	return &consoleService{}
}

func (svc *consoleService) Send(_ context.Context, msg Message) error {
	svc.mu.Lock()
	svc.sent = append(svc.sent, msg)
	svc.mu.Unlock()

	log.Printf("[MAIL] to=%s subject=%q\n%s", msg.To.Address, msg.Subject, msg.TextContent)
	return nil
}

// SentMessages devolve as mensagens acumuladas (uso em teste).
func (svc *consoleService) SentMessages() []Message {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Message, len(svc.sent))
	copy(out, svc.sent)
	return out
}
