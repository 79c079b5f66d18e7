package helper

import (
	"errors"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Validação de hot path fora do validator/v10: mensagens diretas em pt-BR.
func ValidateRegisterInput(email, password, fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return errors.New("Informe seu nome completo")
	}
	if len(strings.TrimSpace(fullName)) < 3 {
		return errors.New("Nome muito curto")
	}
	if !IsValidEmail(strings.TrimSpace(email)) {
		return errors.New("Formato de e-mail inválido")
	}
	if len(password) < 8 {
		return errors.New("A senha deve ter no mínimo 8 caracteres")
	}
	return nil
}

func ValidateLoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("Informe e-mail e senha")
	}
	return nil
}
