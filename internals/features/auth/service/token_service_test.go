package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	claims := buildAccessClaims(userID, "ana@escola.org", "student", "Ana Souza", now)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parser := jwt.Parser{SkipClaimsValidation: true}
	tok, err := parser.Parse(signed, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v valid=%v", err, tok.Valid)
	}

	got, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if got["sub"] != userID.String() {
		t.Fatalf("sub = %v, want %s", got["sub"], userID)
	}
	if got["role"] != "student" {
		t.Fatalf("role = %v", got["role"])
	}
	if got["full_name"] != "Ana Souza" {
		t.Fatalf("full_name = %v", got["full_name"])
	}

	exp := int64(got["exp"].(float64))
	if want := now.Add(accessTTLDefault).Unix(); exp != want {
		t.Fatalf("exp = %d, want %d", exp, want)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	claims := buildAccessClaims(uuid.New(), "a@b.org", "teacher", "X", time.Now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = jwt.Parse(signed, func(tk *jwt.Token) (any, error) {
		return []byte("secret-b"), nil
	})
	if err == nil {
		t.Fatal("expected signature validation error")
	}
}

func TestParseRefreshTokenRoundTrip(t *testing.T) {
	secret := "refresh-secret"
	userID := uuid.New()
	claims := buildRefreshClaims(userID, time.Now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := parseRefreshToken(signed, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != userID {
		t.Fatalf("sub = %s, want %s", got, userID)
	}
}

func TestParseRefreshTokenRejectsOtherSigningMethods(t *testing.T) {
	secret := "refresh-secret"
	claims := buildRefreshClaims(uuid.New(), time.Now())

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseRefreshToken(hs512, secret); err == nil {
		t.Fatal("HS512 token must be rejected")
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseRefreshToken(none, secret); err == nil {
		t.Fatal("alg=none token must be rejected")
	}
}

func TestComputeRefreshHashIsDeterministicPerSecret(t *testing.T) {
	a1 := computeRefreshHash("token-x", "s1")
	a2 := computeRefreshHash("token-x", "s1")
	b := computeRefreshHash("token-x", "s2")
	c := computeRefreshHash("token-y", "s1")

	if !bytes.Equal(a1, a2) {
		t.Fatal("same token and secret must hash equal")
	}
	if bytes.Equal(a1, b) {
		t.Fatal("different secret must change the hash")
	}
	if bytes.Equal(a1, c) {
		t.Fatal("different token must change the hash")
	}
	if len(a1) != 32 {
		t.Fatalf("hash length = %d, want 32", len(a1))
	}
}
