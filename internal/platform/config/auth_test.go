package config

import "testing"

func TestParseTokenPairs(t *testing.T) {
	t.Parallel()

	tokens, err := parseTokenPairs("tok-a:auth0|anna, tok-b:auth0|mark")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tokens) != 2 || tokens["tok-a"] != "auth0|anna" || tokens["tok-b"] != "auth0|mark" {
		t.Fatalf("tokens=%v", tokens)
	}

	for _, raw := range []string{"", "tok-only", ":subject", "tok:"} {
		if _, err := parseTokenPairs(raw); err == nil {
			t.Errorf("parseTokenPairs(%q): expected error", raw)
		}
	}
}
