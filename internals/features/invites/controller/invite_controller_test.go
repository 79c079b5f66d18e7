package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "github.com/geodevmt/app-projeto-vida/internals/features/invites/model"
	"github.com/geodevmt/app-projeto-vida/internals/features/invites/service"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

type fakeInviteStore struct {
	created []*model.InviteModel
	err     error
}

func (f *fakeInviteStore) Create(_ context.Context, inv *model.InviteModel) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInviteStore) FindActiveByTokenHash(_ context.Context, hash []byte, _ time.Time) (*model.InviteModel, error) {
	for _, inv := range f.created {
		if bytes.Equal(inv.TokenHash, hash) {
			return inv, nil
		}
	}
	return nil, service.ErrInviteNotFound
}

func newInviteTestApp(store service.InviteStore, mailSvc mailer.EmailService) (*fiber.App, uuid.UUID) {
	teacherID := uuid.New()
	ic := &InviteController{
		Svc: &service.InviteService{
			Store:  store,
			Mailer: mailSvc,
			Now:    time.Now,
		},
	}
	app := fiber.New()
	app.Post("/api/invite", func(c *fiber.Ctx) error {
		c.Locals(helpers.LocUserID, teacherID.String())
		c.Locals(helpers.LocUserRole, "teacher")
		return c.Next()
	}, ic.SendInvite)
	return app, teacherID
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func TestSendInviteRejectsMissingFields(t *testing.T) {
	store := &fakeInviteStore{}
	console := mailer.NewConsoleService()
	app, _ := newInviteTestApp(store, console)

	cases := []map[string]string{
		{},
		{"email": "p@escola.org"},
		{"fullName": "Paulo Freire"},
		{"email": "", "fullName": ""},
	}
	for i, body := range cases {
		status, out := postJSON(t, app, "/api/invite", body)
		if status != fiber.StatusBadRequest {
			t.Fatalf("case %d: status = %d, want 400", i, status)
		}
		if out["error"] != "Email e Nome são obrigatórios" {
			t.Fatalf("case %d: error = %v", i, out["error"])
		}
	}
	if len(store.created) != 0 {
		t.Fatalf("no invite should be stored, got %d", len(store.created))
	}
	if len(console.SentMessages()) != 0 {
		t.Fatalf("no email should be sent, got %d", len(console.SentMessages()))
	}
}

func TestSendInviteSuccess(t *testing.T) {
	store := &fakeInviteStore{}
	console := mailer.NewConsoleService()
	app, teacherID := newInviteTestApp(store, console)

	status, out := postJSON(t, app, "/api/invite", map[string]string{
		"email":    "Novo.Prof@Escola.org",
		"fullName": "Paulo Freire",
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if out["message"] != "Convite enviado com sucesso!" {
		t.Fatalf("message = %v", out["message"])
	}

	if len(store.created) != 1 {
		t.Fatalf("stored invites = %d, want 1", len(store.created))
	}
	inv := store.created[0]
	if inv.Email != "novo.prof@escola.org" {
		t.Fatalf("email = %q, want lowercased", inv.Email)
	}
	if inv.Role != "teacher" {
		t.Fatalf("role = %q, want teacher", inv.Role)
	}
	if inv.InvitedBy != teacherID {
		t.Fatalf("invited_by = %v, want %v", inv.InvitedBy, teacherID)
	}
	if len(inv.TokenHash) != 32 {
		t.Fatalf("token hash length = %d, want 32 (sha256)", len(inv.TokenHash))
	}

	sent := console.SentMessages()
	if len(sent) != 1 {
		t.Fatalf("sent emails = %d, want 1", len(sent))
	}
	if sent[0].To.Address != "novo.prof@escola.org" {
		t.Fatalf("to = %q", sent[0].To.Address)
	}
}

func TestSendInviteStoreFailureReturns500WithError(t *testing.T) {
	store := &fakeInviteStore{err: errors.New("db down")}
	console := mailer.NewConsoleService()
	app, _ := newInviteTestApp(store, console)

	status, out := postJSON(t, app, "/api/invite", map[string]string{
		"email":    "p@escola.org",
		"fullName": "Paulo Freire",
	})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if _, ok := out["error"]; !ok {
		t.Fatalf("expected 'error' key in body, got %v", out)
	}
	if len(console.SentMessages()) != 0 {
		t.Fatalf("no email should be sent when the store fails")
	}
}
