package config

import (
	"fmt"
	"os"
	"strings"
)

// AuthConfig selects how the API authenticates callers.
//
// - mode "token": static bearer tokens, AUTH_TOKENS maps token to subject
// - mode "dev": X-Debug-Subject header, no credential check (local only)
type AuthConfig struct {
	Mode string

	// Tokens maps bearer token -> subject. Only read in token mode.
	Tokens map[string]string

	// DevSubject is the fallback subject when the debug header is absent.
	// Only read in dev mode.
	DevSubject string
}

func LoadAuthConfigFromEnv() (AuthConfig, error) {
	mode := os.Getenv("AUTH_MODE")
	if mode == "" {
		mode = "token"
	}

	switch mode {
	case "dev":
		return AuthConfig{
			Mode:       "dev",
			DevSubject: os.Getenv("DEV_SUBJECT"),
		}, nil
	case "token":
		raw := os.Getenv("AUTH_TOKENS")
		if raw == "" {
			return AuthConfig{}, fmt.Errorf("missing required env var AUTH_TOKENS (comma-separated token:subject pairs)")
		}
		tokens, err := parseTokenPairs(raw)
		if err != nil {
			return AuthConfig{}, err
		}
		return AuthConfig{Mode: "token", Tokens: tokens}, nil
	default:
		return AuthConfig{}, fmt.Errorf("AUTH_MODE must be \"token\" or \"dev\", got %q", mode)
	}
}

func parseTokenPairs(raw string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, subject, ok := strings.Cut(pair, ":")
		if !ok || token == "" || subject == "" {
			return nil, fmt.Errorf("AUTH_TOKENS entry %q is not a token:subject pair", pair)
		}
		tokens[token] = subject
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("AUTH_TOKENS contains no token:subject pairs")
	}
	return tokens, nil
}
