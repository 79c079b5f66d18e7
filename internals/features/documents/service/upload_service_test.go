package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
)

type fakeStore struct {
	created []*model.DocumentModel
	err     error
}

func (f *fakeStore) Create(_ context.Context, doc *model.DocumentModel) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, doc)
	return nil
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000).UTC()
}

func newTestService(blob ossSvc.BlobService, store DocumentStore) *UploadService {
	return &UploadService{Blob: blob, Store: store, Now: fixedNow}
}

func TestUploadRejectsInvalidTypeBeforeAnyNetworkCall(t *testing.T) {
	calls := 0
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(context.Context, string, io.Reader, string) (string, error) {
			calls++
			return "", nil
		},
	}
	svc := newTestService(blob, &fakeStore{})

	cases := []string{
		"image/png",
		"text/plain",
		"application/zip",
		"",
	}
	for _, ct := range cases {
		_, err := svc.Upload(context.Background(), UploadInput{
			UserID:      uuid.New(),
			FileName:    "arquivo.pdf",
			ContentType: ct,
			SizeBytes:   100,
			Body:        strings.NewReader("x"),
		})
		if err == nil {
			t.Fatalf("content type %q: expected error, got nil", ct)
		}
		var ferr *fiber.Error
		if !errors.As(err, &ferr) || ferr.Code != fiber.StatusUnprocessableEntity {
			t.Fatalf("content type %q: expected 422 fiber error, got %v", ct, err)
		}
		if ferr.Message != MsgInvalidType {
			t.Fatalf("content type %q: wrong message %q", ct, ferr.Message)
		}
	}
	if calls != 0 {
		t.Fatalf("expected zero blob calls for invalid input, got %d", calls)
	}
}

func TestUploadRejectsOversizeBeforeAnyNetworkCall(t *testing.T) {
	calls := 0
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(context.Context, string, io.Reader, string) (string, error) {
			calls++
			return "", nil
		},
	}
	svc := newTestService(blob, &fakeStore{})

	_, err := svc.Upload(context.Background(), UploadInput{
		UserID:      uuid.New(),
		FileName:    "grande.pdf",
		ContentType: "application/pdf",
		SizeBytes:   MaxUploadBytes + 1,
		Body:        strings.NewReader("x"),
	})
	if err == nil {
		t.Fatal("expected error for oversize file")
	}
	var ferr *fiber.Error
	if !errors.As(err, &ferr) || ferr.Message != MsgTooLarge {
		t.Fatalf("expected %q, got %v", MsgTooLarge, err)
	}
	if calls != 0 {
		t.Fatalf("expected zero blob calls, got %d", calls)
	}
}

func TestUploadBuildsSanitizedTimestampedKey(t *testing.T) {
	userID := uuid.New()
	var gotKey string
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			gotKey = key
			return "https://cdn.example.com/" + key, nil
		},
	}
	store := &fakeStore{}
	svc := newTestService(blob, store)

	doc, err := svc.Upload(context.Background(), UploadInput{
		UserID:      userID,
		FileName:    "relatório final.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		SizeBytes:   2048,
		Body:        strings.NewReader("conteudo"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKey := fmt.Sprintf("%s/1700000000000_relatorio_final.docx", userID)
	if gotKey != wantKey {
		t.Fatalf("key = %q, want %q", gotKey, wantKey)
	}
	if doc.FilePath != wantKey {
		t.Fatalf("FilePath = %q, want %q", doc.FilePath, wantKey)
	}
	if doc.FileName != "relatório final.docx" {
		t.Fatalf("FileName = %q, want original display name", doc.FileName)
	}
	if doc.FileURL != "https://cdn.example.com/"+wantKey {
		t.Fatalf("FileURL = %q", doc.FileURL)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored document, got %d", len(store.created))
	}
}

func TestUploadKeepsOriginalDisplayName(t *testing.T) {
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return "https://cdn.example.com/" + key, nil
		},
	}
	store := &fakeStore{}
	svc := newTestService(blob, store)

	doc, err := svc.Upload(context.Background(), UploadInput{
		UserID:      uuid.New(),
		FileName:    "Plano de Vida (versão 2).pdf",
		ContentType: "application/pdf",
		SizeBytes:   512,
		Body:        strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.FileName != "Plano de Vida (versão 2).pdf" {
		t.Fatalf("FileName = %q, want original display name", doc.FileName)
	}
	if strings.Contains(doc.FilePath, "(") || strings.Contains(doc.FilePath, " ") {
		t.Fatalf("FilePath %q should only carry the sanitized form", doc.FilePath)
	}
}

func TestUploadReportsProgressMilestones(t *testing.T) {
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return "https://cdn.example.com/" + key, nil
		},
	}
	svc := newTestService(blob, &fakeStore{})

	var seen []int
	_, err := svc.Upload(context.Background(), UploadInput{
		UserID:      uuid.New(),
		FileName:    "plano.pdf",
		ContentType: "application/pdf",
		SizeBytes:   10,
		Body:        strings.NewReader("x"),
		Progress:    func(pct int) { seen = append(seen, pct) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{10, 60, 100}
	if len(seen) != len(want) {
		t.Fatalf("progress calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("progress calls = %v, want %v", seen, want)
		}
	}
}

func TestUploadDeletesBlobWhenInsertFails(t *testing.T) {
	var deletedKey string
	blob := &ossSvc.MockBlobService{
		UploadDocumentFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return "https://cdn.example.com/" + key, nil
		},
		DeleteByKeyFn: func(_ context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}
	svc := newTestService(blob, &fakeStore{err: errors.New("insert failed")})

	userID := uuid.New()
	_, err := svc.Upload(context.Background(), UploadInput{
		UserID:      userID,
		FileName:    "plano.pdf",
		ContentType: "application/pdf",
		SizeBytes:   10,
		Body:        strings.NewReader("x"),
	})
	if err == nil {
		t.Fatal("expected error when insert fails")
	}
	wantKey := fmt.Sprintf("%s/1700000000000_plano.pdf", userID)
	if deletedKey != wantKey {
		t.Fatalf("compensating delete key = %q, want %q", deletedKey, wantKey)
	}
}
