package authUtils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAndSetToken("64f1a2b3c4d5e6f7a8b9c0d1")
	if err != nil {
		t.Fatalf("GenerateAndSetToken error: %v", err)
	}

	userID, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if userID != "64f1a2b3c4d5e6f7a8b9c0d1" {
		t.Fatalf("ParseToken returned %q, expected original user id", userID)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ParseToken(tok); err == nil {
			t.Errorf("ParseToken(%q) succeeded, expected error", tok)
		}
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := GenerateAndSetToken("64f1a2b3c4d5e6f7a8b9c0d1")
	if err != nil {
		t.Fatalf("GenerateAndSetToken error: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateAndSetToken("abc"); err == nil {
		t.Error("GenerateAndSetToken succeeded without JWT_SECRET")
	}
}
