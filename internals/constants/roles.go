package constants

// Papéis de conta. Fixados na criação (cadastro = student, convite = teacher)
// e nunca alterados depois.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Mensagens padrão de acesso negado (Role Gate).
const (
	ErrAccessDeniedTeacherArea = "Acesso negado. Área restrita a professores."
	ErrAccessDeniedStudentArea = "Acesso negado. Área restrita a alunos."
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}
