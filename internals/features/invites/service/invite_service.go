// file: internals/features/invites/service/invite_service.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/configs"
	"github.com/geodevmt/app-projeto-vida/internals/constants"
	model "github.com/geodevmt/app-projeto-vida/internals/features/invites/model"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

const inviteTTL = 7 * 24 * time.Hour

var ErrInviteNotFound = errors.New("convite inválido ou expirado")

// InviteStore: persistência dos convites, injetável para teste.
type InviteStore interface {
	Create(ctx context.Context, inv *model.InviteModel) error
	FindActiveByTokenHash(ctx context.Context, hash []byte, now time.Time) (*model.InviteModel, error)
}

type GormInviteStore struct {
	DB *gorm.DB
}

func (s *GormInviteStore) Create(ctx context.Context, inv *model.InviteModel) error {
	return s.DB.WithContext(ctx).Create(inv).Error
}

func (s *GormInviteStore) FindActiveByTokenHash(ctx context.Context, hash []byte, now time.Time) (*model.InviteModel, error) {
	var inv model.InviteModel
	err := s.DB.WithContext(ctx).
		Where("token_hash = ? AND accepted_at IS NULL AND expires_at > ?", hash, now).
		Take(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &inv, nil
}

type InviteService struct {
	Store  InviteStore
	Mailer mailer.EmailService
	Now    func() time.Time
}

func NewInviteService(db *gorm.DB, mailSvc mailer.EmailService) *InviteService {
	return &InviteService{
		Store:  &GormInviteStore{DB: db},
		Mailer: mailSvc,
		Now:    time.Now,
	}
}

func HashInviteToken(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}

func newInviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CreateAndSend registra o convite e envia o magic link. Se o email
// falhar, o convite já criado fica inerte: expira sozinho e o reaper
// limpa depois.
func (s *InviteService) CreateAndSend(ctx context.Context, email, fullName string, invitedBy uuid.UUID) error {
	rawToken, err := newInviteToken()
	if err != nil {
		return fmt.Errorf("gerar token: %w", err)
	}

	now := s.Now().UTC()
	inv := &model.InviteModel{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FullName:  strings.TrimSpace(fullName),
		Role:      constants.RoleTeacher,
		TokenHash: HashInviteToken(rawToken),
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(inviteTTL),
	}
	if err := s.Store.Create(ctx, inv); err != nil {
		return fmt.Errorf("registrar convite: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/convite?token=%s", strings.TrimRight(configs.AppBaseURL, "/"), rawToken)
	msg := mailer.Message{
		To:      mail.Address{Name: inv.FullName, Address: inv.Email},
		Subject: "Convite para o Projeto de Vida",
		TextContent: fmt.Sprintf(
			"Olá, %s!\n\nVocê foi convidado(a) para ser professor(a) no Projeto de Vida.\nAcesse o link para criar sua conta: %s\n\nO convite expira em 7 dias.",
			inv.FullName, inviteURL),
		HTMLContent: fmt.Sprintf(
			`<p>Olá, %s!</p><p>Você foi convidado(a) para ser professor(a) no <strong>Projeto de Vida</strong>.</p><p><a href="%s">Clique aqui para criar sua conta</a>. O convite expira em 7 dias.</p>`,
			html.EscapeString(inv.FullName), inviteURL),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("enviar email: %w", err)
	}
	return nil
}

// FindActive devolve o convite pendente para um token bruto.
func (s *InviteService) FindActive(ctx context.Context, rawToken string) (*model.InviteModel, error) {
	return s.Store.FindActiveByTokenHash(ctx, HashInviteToken(rawToken), s.Now().UTC())
}
