package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrReviewUser   = errors.New("review requires a user")
	ErrReviewGame   = errors.New("review requires a game")
	ErrReviewRating = errors.New("rating must be between 1 and 5")
)

// Review is immutable once created. It only becomes visible from its user and
// game through LinkReview.
type Review struct {
	id        uuid.UUID
	user      *User
	game      *Game
	rating    int
	comment   string
	createdAt time.Time
}

func NewReview(user *User, game *Game, rating int, comment string) (*Review, error) {
	return RestoreReview(uuid.New(), user, game, rating, comment, time.Now().UTC())
}

// RestoreReview rebuilds a review that already has an identity, e.g. one read
// back from storage.
func RestoreReview(id uuid.UUID, user *User, game *Game, rating int, comment string, createdAt time.Time) (*Review, error) {
	if user == nil {
		return nil, ErrReviewUser
	}
	if game == nil {
		return nil, ErrReviewGame
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrReviewRating
	}

	return &Review{
		id:        id,
		user:      user,
		game:      game,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
	}, nil
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) User() *User          { return r.user }
func (r *Review) Game() *Game          { return r.game }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }

// LinkReview appends the review to both its author's and its game's review
// lists. It is a no-op for a review that is already linked and reports
// whether anything changed. Repositories are the only callers.
func LinkReview(r *Review) bool {
	if r == nil || r.user.hasReview(r) {
		return false
	}
	r.user.reviews = append(r.user.reviews, r)
	if !r.game.hasReview(r) {
		r.game.reviews = append(r.game.reviews, r)
	}
	return true
}
