package middleware

import (
	"net/http"
	"sync"

	"games_catalog/internal/storage"
)

// RequestScope runs requests one at a time against a shared repository.
// Backends that keep a session get a fresh one per request, closed when the
// request ends.
type RequestScope struct {
	mu   sync.Mutex
	repo storage.Repository
}

func NewRequestScope(repo storage.Repository) *RequestScope {
	return &RequestScope{repo: repo}
}

func (s *RequestScope) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if scoped, ok := s.repo.(storage.SessionScoped); ok {
			scoped.ResetSession()
			defer scoped.CloseSession()
		}

		next.ServeHTTP(w, r)
	})
}
