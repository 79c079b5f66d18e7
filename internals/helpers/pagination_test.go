package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func parseVia(t *testing.T, target string) PageParams {
	t.Helper()
	var got PageParams
	app := fiber.New()
	app.Get("/list", func(c *fiber.Ctx) error {
		got = ParsePage(c, DefaultPageOpts)
		return c.SendString("ok")
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return got
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		target  string
		page    int
		perPage int
	}{
		{"/list", 1, 50},
		{"/list?page=3&per_page=10", 3, 10},
		{"/list?page=0", 1, 50},
		{"/list?page=abc&per_page=xyz", 1, 50},
		{"/list?per_page=9999", 1, 200},
		{"/list?per_page=-5", 1, 50},
	}
	for _, tc := range cases {
		got := parseVia(t, tc.target)
		if got.Page != tc.page || got.PerPage != tc.perPage {
			t.Fatalf("%s: got page=%d per=%d, want page=%d per=%d",
				tc.target, got.Page, got.PerPage, tc.page, tc.perPage)
		}
	}
}

func TestPageParamsOffset(t *testing.T) {
	p := PageParams{Page: 3, PerPage: 20}
	if p.Limit() != 20 {
		t.Fatalf("Limit = %d", p.Limit())
	}
	if p.Offset() != 40 {
		t.Fatalf("Offset = %d", p.Offset())
	}
}

func TestBuildPageMeta(t *testing.T) {
	meta := BuildPageMeta(101, PageParams{Page: 2, PerPage: 50})
	if meta.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Fatalf("HasNext=%v HasPrev=%v, want both true", meta.HasNext, meta.HasPrev)
	}

	empty := BuildPageMeta(0, PageParams{Page: 1, PerPage: 50})
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("empty meta = %+v", empty)
	}
}
