package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	documentModel "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
)

func strp(s string) *string { return &s }

func TestNewStudentResponseWithDocuments(t *testing.T) {
	id := uuid.New()
	bd := datatypes.Date(time.Date(2008, 3, 15, 0, 0, 0, 0, time.UTC))
	p := profileModel.ProfileModel{
		ID:        id,
		FullName:  strp("Ana Souza"),
		School:    strp("EE Dom Pedro II"),
		Period:    strp("Manhã"),
		BirthDate: &bd,
		Role:      "student",
		Documents: []documentModel.DocumentModel{
			{
				ID:          uuid.New(),
				UserID:      id,
				FileName:    "projeto_de_vida.pdf",
				FileURL:     "https://cdn.example.com/uploads/x/projeto_de_vida.pdf",
				ContentType: "application/pdf",
				SizeBytes:   1234,
				CreatedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	got := NewStudentResponse(&p)

	if got.ID != id {
		t.Fatalf("ID = %v, want %v", got.ID, id)
	}
	if got.FullName == nil || *got.FullName != "Ana Souza" {
		t.Fatalf("FullName = %v", got.FullName)
	}
	if got.BirthDate == nil || *got.BirthDate != "2008-03-15" {
		t.Fatalf("BirthDate = %v", got.BirthDate)
	}
	if len(got.Documents) != 1 {
		t.Fatalf("Documents len = %d, want 1", len(got.Documents))
	}
	if got.Documents[0].FileName != "projeto_de_vida.pdf" {
		t.Fatalf("doc FileName = %q", got.Documents[0].FileName)
	}
	if got.Documents[0].CreatedAt != "2026-02-01T12:00:00Z" {
		t.Fatalf("doc CreatedAt = %q", got.Documents[0].CreatedAt)
	}
}

func TestNewStudentResponseWithoutDocuments(t *testing.T) {
	p := profileModel.ProfileModel{
		ID:       uuid.New(),
		FullName: strp("Bruno Lima"),
		Role:     "student",
	}

	got := NewStudentResponse(&p)

	if got.Documents == nil {
		t.Fatal("Documents should be an empty slice, not nil")
	}
	if len(got.Documents) != 0 {
		t.Fatalf("Documents len = %d, want 0", len(got.Documents))
	}
	if got.BirthDate != nil {
		t.Fatalf("BirthDate = %v, want nil", got.BirthDate)
	}
}

func TestNewStudentResponsesKeepsOrder(t *testing.T) {
	items := []profileModel.ProfileModel{
		{ID: uuid.New(), FullName: strp("Ana"), Role: "student"},
		{ID: uuid.New(), FullName: strp("Bruno"), Role: "student"},
		{ID: uuid.New(), FullName: strp("Carla"), Role: "student"},
	}
	got := NewStudentResponses(items)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"Ana", "Bruno", "Carla"} {
		if got[i].FullName == nil || *got[i].FullName != want {
			t.Fatalf("item %d FullName = %v, want %q", i, got[i].FullName, want)
		}
	}
}
