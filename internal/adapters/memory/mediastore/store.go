package mediastore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory mediastore.Store producing deterministic fake URLs.
// It is safe for concurrent use.
type Store struct {
	baseURL string

	mu   sync.Mutex
	keys []string
}

func NewStore() *Store {
	return &Store{baseURL: "https://media.invalid"}
}

func (s *Store) PresignUpload(ctx context.Context, fileName, contentType string) (string, string, error) {
	_ = ctx
	_ = contentType
	key := "media/" + uuid.NewString() + "-" + sanitize(fileName)
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return s.baseURL + "/upload/" + key, key, nil
}

func (s *Store) ResolveURL(ctx context.Context, key string) (string, error) {
	_ = ctx
	return s.baseURL + "/" + key, nil
}

// Keys returns every storage key minted so far (test helper).
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
