package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("user-1", "alice", 3, "analyst", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID() != "user-1" || claims.Username != "alice" || claims.AccessLevel != 3 || claims.Role != "analyst" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsOutOfRangeAccessLevel(t *testing.T) {
	for _, level := range []int{0, 6, -1} {
		token, err := Sign("user-1", "alice", level, "", time.Hour)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if _, err := Parse(token); err == nil {
			t.Fatalf("Parse accepted access level %d", level)
		}
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Sign("user-1", "alice", 2, "", -time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("Parse accepted expired token")
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	token, err := Sign("user-1", "alice", 2, "", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := Parse(tampered); err == nil {
		t.Fatal("Parse accepted tampered signature")
	}
}
