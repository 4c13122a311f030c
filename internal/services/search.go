package services

import (
	"fmt"
	"log/slog"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/storage"
)

type SearchService struct {
	repo storage.Repository
	log  *slog.Logger
}

func NewSearchService(repo storage.Repository, log *slog.Logger) *SearchService {
	return &SearchService{
		repo: repo,
		log:  log,
	}
}

// Search filters the catalog by title substring, genre and publisher. Empty
// arguments match everything; results keep title order.
func (s *SearchService) Search(q, genre, publisher string, page, size int) (Page[*models.Game], error) {
	const op = "services.search.Search"

	games, err := s.repo.GetGames()
	if err != nil {
		return Page[*models.Game]{}, fmt.Errorf("%s: %w", op, err)
	}

	matches := query.Search(q, models.Genre{Name: genre}, models.Publisher{Name: publisher}, games)

	return newPage(matches, page, size)
}
