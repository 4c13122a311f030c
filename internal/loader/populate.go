// Package loader fills a repository from the catalog's CSV data files.
//
// Games are loaded first, then users, then reviews. A malformed row is
// skipped and logged. Reviews are all resolved against the repository before
// the first one is stored; a reviewer or game that cannot be found fails the
// whole batch with ErrUnresolvedReference.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"games_catalog/internal/models"
	"games_catalog/internal/storage"
)

var ErrUnresolvedReference = errors.New("unresolved review reference")

// Hasher turns a plain password into the form stored with the user.
type Hasher func(password string) (string, error)

type Stats struct {
	Games   int
	Users   int
	Reviews int
	Skipped int
}

type Loader struct {
	src  Source
	log  *slog.Logger
	hash Hasher
}

type Option func(*Loader)

func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithHasher sets the password hasher. Without one, passwords from
// users.csv are stored verbatim and are expected to be hashed already.
func WithHasher(h Hasher) Option {
	return func(l *Loader) { l.hash = h }
}

func New(src Source, opts ...Option) *Loader {
	l := &Loader{
		src:  src,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		hash: func(p string) (string, error) { return p, nil },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Populate(repo storage.Repository) (Stats, error) {
	const op = "loader.Populate"

	var stats Stats

	if err := l.LoadGames(repo, &stats); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	if err := l.LoadUsers(repo, &stats); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	if err := l.LoadReviews(repo, &stats); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	l.log.Info("catalog populated",
		slog.Int("games", stats.Games),
		slog.Int("users", stats.Users),
		slog.Int("reviews", stats.Reviews),
		slog.Int("skipped", stats.Skipped))

	return stats, nil
}

func (l *Loader) LoadGames(repo storage.Repository, stats *Stats) error {
	t, err := readTable(l.src, GamesFile)
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		game, err := parseGame(t, row)
		if err != nil {
			l.skip(t.name, i, err)
			stats.Skipped++
			continue
		}
		if err := repo.AddGame(game); err != nil {
			if errors.Is(err, storage.ErrExists) {
				l.skip(t.name, i, err)
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Games++
	}

	return nil
}

func (l *Loader) LoadUsers(repo storage.Repository, stats *Stats) error {
	t, err := readTable(l.src, UsersFile)
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		rec, err := parseUser(t, row)
		if err != nil {
			l.skip(t.name, i, err)
			stats.Skipped++
			continue
		}

		password, err := l.hash(rec.password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", rec.username, err)
		}

		if err := repo.AddUser(models.NewUser(rec.username, password)); err != nil {
			if errors.Is(err, storage.ErrExists) {
				l.skip(t.name, i, err)
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Users++
	}

	return nil
}

func (l *Loader) LoadReviews(repo storage.Repository, stats *Stats) error {
	t, err := readTable(l.src, ReviewsFile)
	if err != nil {
		return err
	}

	reviews := make([]*models.Review, 0, len(t.rows))
	for i, row := range t.rows {
		rec, err := parseReview(t, row)
		if err != nil {
			l.skip(t.name, i, err)
			stats.Skipped++
			continue
		}

		user, err := repo.GetUser(rec.reviewer)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: row %d: user %q", ErrUnresolvedReference, i+2, rec.reviewer)
		}
		game, err := repo.GetGame(rec.gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return fmt.Errorf("%w: row %d: game %d", ErrUnresolvedReference, i+2, rec.gameID)
		}

		review, err := models.NewReview(user, game, rec.rating, rec.comment)
		if err != nil {
			l.skip(t.name, i, err)
			stats.Skipped++
			continue
		}
		reviews = append(reviews, review)
	}

	for _, review := range reviews {
		if err := repo.AddReview(review); err != nil {
			return err
		}
		stats.Reviews++
	}

	return nil
}

// skip logs a dropped row. Row numbers are 1-based and count the header.
func (l *Loader) skip(file string, i int, err error) {
	l.log.Warn("skipping row",
		slog.String("file", file),
		slog.Int("row", i+2),
		slog.String("error", err.Error()))
}
