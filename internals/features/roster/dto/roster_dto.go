// file: internals/features/roster/dto/roster_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	documentDto "github.com/geodevmt/app-projeto-vida/internals/features/documents/dto"
	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
)

// StudentResponse: linha da lista de alunos do professor, com os
// documentos já anexados (ou lista vazia quando ainda não enviou).
type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  *string   `json:"full_name"`
	Email     *string   `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	School    *string   `json:"school"`
	ClassName *string   `json:"class_name"`
	Period    *string   `json:"period"`
	BirthDate *string   `json:"birth_date"`
	AboutMe   *string   `json:"about_me"`
	Dreams    *string   `json:"dreams"`
	Skills    *string   `json:"skills"`

	Documents []documentDto.DocumentResponse `json:"documents"`
}

const dateLayout = "2006-01-02"

func NewStudentResponse(m *profileModel.ProfileModel) StudentResponse {
	var birthDate *string
	if m.BirthDate != nil {
		s := time.Time(*m.BirthDate).Format(dateLayout)
		birthDate = &s
	}
	return StudentResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		School:    m.School,
		ClassName: m.ClassName,
		Period:    m.Period,
		BirthDate: birthDate,
		AboutMe:   m.AboutMe,
		Dreams:    m.Dreams,
		Skills:    m.Skills,
		Documents: documentDto.NewDocumentResponses(m.Documents),
	}
}

func NewStudentResponses(items []profileModel.ProfileModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewStudentResponse(&items[i]))
	}
	return out
}
