// Package query holds the pure sorting, paging and search helpers that sit on
// top of a repository. Both storage backends delegate their sort and sublist
// operations here so the orderings cannot drift apart.
package query

import (
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"games_catalog/internal/models"
)

// Game sort modes. Anything else sorts by name.
const (
	SortName   = "name"
	SortDate   = "date"
	SortLatest = "latest"
	SortPrice  = "price"
)

// Review sort options. Anything else keeps insertion order.
const (
	CommentLengthAscend  = "comment_length-ascend"
	CommentLengthDescend = "comment_length-descend"
	StarRatingsAscend    = "star_ratings-ascend"
	StarRatingsDescend   = "star_ratings-descend"
)

var ErrInvalidReleaseDate = errors.New("invalid release date")

// ParseReleaseDate parses a display-format date such as "Nov 12, 2007".
func ParseReleaseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.ReleaseDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidReleaseDate, s)
	}
	return t, nil
}

// SortGames returns a sorted copy of games. Equal keys are ordered by id, so
// the result is a total order and sorting twice changes nothing.
func SortGames(games []*models.Game, mode string) ([]*models.Game, error) {
	const op = "query.sort.SortGames"

	out := make([]*models.Game, len(games))
	copy(out, games)

	switch mode {
	case SortDate, SortLatest:
		dates := make(map[*models.Game]time.Time, len(out))
		for _, g := range out {
			d, err := ParseReleaseDate(g.ReleaseDate)
			if err != nil {
				return nil, fmt.Errorf("%s: game %d: %w", op, g.ID(), err)
			}
			dates[g] = d
		}
		desc := mode == SortLatest
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := dates[out[i]], dates[out[j]]
			if !di.Equal(dj) {
				if desc {
					return di.After(dj)
				}
				return di.Before(dj)
			}
			return out[i].ID() < out[j].ID()
		})
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Price() != out[j].Price() {
				return out[i].Price() < out[j].Price()
			}
			return out[i].ID() < out[j].ID()
		})
	default:
		SortByTitle(out)
	}

	return out, nil
}

// SortByTitle sorts in place by byte-wise title, then id.
func SortByTitle(games []*models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Title != games[j].Title {
			return games[i].Title < games[j].Title
		}
		return games[i].ID() < games[j].ID()
	})
}

func SortGenres(genres []models.Genre) {
	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].Name < genres[j].Name
	})
}

func SortPublishers(publishers []models.Publisher) {
	sort.SliceStable(publishers, func(i, j int) bool {
		return publishers[i].Name < publishers[j].Name
	})
}

// SortReviews returns a sorted copy of reviews. Comment length counts runes.
func SortReviews(reviews []*models.Review, option string) []*models.Review {
	out := make([]*models.Review, len(reviews))
	copy(out, reviews)

	var less func(a, b *models.Review) bool
	switch option {
	case CommentLengthAscend:
		less = func(a, b *models.Review) bool { return commentLen(a) < commentLen(b) }
	case CommentLengthDescend:
		less = func(a, b *models.Review) bool { return commentLen(a) > commentLen(b) }
	case StarRatingsAscend:
		less = func(a, b *models.Review) bool { return a.Rating() < b.Rating() }
	case StarRatingsDescend:
		less = func(a, b *models.Review) bool { return a.Rating() > b.Rating() }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func commentLen(r *models.Review) int {
	return utf8.RuneCountInString(r.Comment())
}
