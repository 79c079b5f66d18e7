package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	model "github.com/geodevmt/app-projeto-vida/internals/features/invites/model"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

type memInviteStore struct {
	created []*model.InviteModel
}

func (m *memInviteStore) Create(_ context.Context, inv *model.InviteModel) error {
	m.created = append(m.created, inv)
	return nil
}

func (m *memInviteStore) FindActiveByTokenHash(context.Context, []byte, time.Time) (*model.InviteModel, error) {
	return nil, ErrInviteNotFound
}

func TestCreateAndSendEscapesNameInHTMLBody(t *testing.T) {
	store := &memInviteStore{}
	console := mailer.NewConsoleService()
	svc := &InviteService{Store: store, Mailer: console, Now: time.Now}

	name := `Paulo <script>alert(1)</script>`
	if err := svc.CreateAndSend(context.Background(), "p@escola.org", name, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := console.SentMessages()
	if len(sent) != 1 {
		t.Fatalf("sent emails = %d, want 1", len(sent))
	}
	if strings.Contains(sent[0].HTMLContent, "<script>") {
		t.Fatalf("HTML body must not carry raw markup from the name: %q", sent[0].HTMLContent)
	}
	if !strings.Contains(sent[0].HTMLContent, "&lt;script&gt;") {
		t.Fatalf("HTML body should carry the escaped name: %q", sent[0].HTMLContent)
	}
	// o corpo em texto puro vai sem escape
	if !strings.Contains(sent[0].TextContent, name) {
		t.Fatalf("text body should carry the name verbatim: %q", sent[0].TextContent)
	}
}
