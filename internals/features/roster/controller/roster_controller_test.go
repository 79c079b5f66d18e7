package controller

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ana", "Ana"},
		{"100%", `100\%`},
		{"maria_silva", `maria\_silva`},
		{`c:\docs`, `c:\\docs`},
		{"%_", `\%\_`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
