package query

import (
	"errors"
	"strings"

	"games_catalog/internal/models"
)

var ErrInvalidPageSize = errors.New("page size must be at least 1")

// Sublist splits items into consecutive chunks of size; only the last chunk
// may be shorter.
func Sublist[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, ErrInvalidPageSize
	}

	chunks := make([][]T, 0, TotalPages(len(items), size))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}

// TotalPages is ceil(count / size), or 0 for a non-positive size.
func TotalPages(count, size int) int {
	if size < 1 {
		return 0
	}
	n := count / size
	if count%size != 0 {
		n++
	}
	return n
}

// Paginate returns the 1-indexed page of items. A page out of range yields an
// empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 || page > TotalPages(len(items), size) {
		return []T{}
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// Search matches a case-insensitive title substring. A genre or publisher
// with an empty name matches every game.
func Search(q string, genre models.Genre, publisher models.Publisher, games []*models.Game) []*models.Game {
	q = strings.ToLower(q)

	matches := make([]*models.Game, 0)
	for _, g := range games {
		if !strings.Contains(strings.ToLower(g.Title), q) {
			continue
		}
		if genre.Name != "" && !g.HasGenre(genre.Name) {
			continue
		}
		if publisher.Name != "" && (g.Publisher == nil || g.Publisher.Name != publisher.Name) {
			continue
		}
		matches = append(matches, g)
	}
	return matches
}

// AverageRating is the mean review rating; ok is false when there are no
// reviews.
func AverageRating(game *models.Game) (avg float64, ok bool) {
	reviews := game.Reviews()
	if len(reviews) == 0 {
		return 0, false
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating()
	}
	return float64(total) / float64(len(reviews)), true
}
