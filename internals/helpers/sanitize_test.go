package helper

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"relatório_final.docx", "relatorio_final.docx"},
		{"plano de vida.pdf", "plano_de_vida.pdf"},
		{"currículo (2024).doc", "curriculo__2024_.doc"},
		{"ação&reação.pdf", "acao_reacao.pdf"},
		{"simple-name.pdf", "simple-name.pdf"},
		{"ÀÉÎÕÜç.doc", "AEIOUc.doc"},
	}
	for _, tc := range cases {
		got := SanitizeFileName(tc.in)
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileNameIdempotent(t *testing.T) {
	names := []string{"relatório_final.docx", "currículo (2024).doc", "já_limpo-1.pdf"}
	for _, n := range names {
		once := SanitizeFileName(n)
		twice := SanitizeFileName(once)
		if once != twice {
			t.Fatalf("sanitize not idempotent for %q: %q != %q", n, once, twice)
		}
	}
}
