package mariadb

import (
	"fmt"
	"sort"

	"games_catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// session is a unit of work bound to one request. Its identity map holds
// every aggregate loaded so far, always with the complete closure of
// reviews, favourites and wishlist entries reachable from it.
type session struct {
	db      *gorm.DB
	games   map[int64]*models.Game
	users   map[string]*models.User
	reviews map[uuid.UUID]*models.Review
}

func newSession(db *gorm.DB) *session {
	return &session{
		db:      db.Session(&gorm.Session{NewDB: true}),
		games:   make(map[int64]*models.Game),
		users:   make(map[string]*models.User),
		reviews: make(map[uuid.UUID]*models.Review),
	}
}

func (s *session) close() {
	clear(s.games)
	clear(s.users)
	clear(s.reviews)
}

// graph collects the rows of everything a load has to materialize.
type graph struct {
	games      []gameRow
	genres     []gameGenreRow
	users      []userRow
	reviews    []reviewRow
	favourites []favouriteRow
	wishlist   []wishlistGameRow

	queuedGames   map[int64]bool
	queuedUsers   map[string]bool
	queuedReviews map[string]bool
}

// load materializes the given games and users together with everything
// reachable from them that the session does not hold yet. Rows in seed are
// already fetched games; ids and usernames still have to be queried.
func (s *session) load(seed []gameRow, ids []int64, usernames []string) error {
	g := &graph{
		queuedGames:   make(map[int64]bool),
		queuedUsers:   make(map[string]bool),
		queuedReviews: make(map[string]bool),
	}

	var pendingGames []int64
	var pendingUsers []string
	var fetched []gameRow

	queueGame := func(id int64) {
		if s.games[id] != nil || g.queuedGames[id] {
			return
		}
		g.queuedGames[id] = true
		pendingGames = append(pendingGames, id)
	}
	queueUser := func(name string) {
		if s.users[name] != nil || g.queuedUsers[name] {
			return
		}
		g.queuedUsers[name] = true
		pendingUsers = append(pendingUsers, name)
	}
	queueReviews := func(rows []reviewRow) {
		for _, row := range rows {
			id, err := uuid.Parse(row.ReviewID)
			if err == nil && s.reviews[id] != nil {
				continue
			}
			if g.queuedReviews[row.ReviewID] {
				continue
			}
			g.queuedReviews[row.ReviewID] = true
			g.reviews = append(g.reviews, row)
			queueGame(row.GameID)
			queueUser(row.Username)
		}
	}

	for _, row := range seed {
		if s.games[row.GameID] != nil || g.queuedGames[row.GameID] {
			continue
		}
		g.queuedGames[row.GameID] = true
		fetched = append(fetched, row)
	}
	for _, id := range ids {
		queueGame(id)
	}
	for _, name := range usernames {
		queueUser(name)
	}

	for len(pendingGames) > 0 || len(fetched) > 0 || len(pendingUsers) > 0 {
		if len(pendingGames) > 0 {
			var rows []gameRow
			if err := s.db.Where("game_id IN ?", pendingGames).Find(&rows).Error; err != nil {
				return err
			}
			pendingGames = nil
			fetched = append(fetched, rows...)
		}

		if len(fetched) > 0 {
			gameIDs := make([]int64, 0, len(fetched))
			for _, row := range fetched {
				gameIDs = append(gameIDs, row.GameID)
			}
			g.games = append(g.games, fetched...)
			fetched = nil

			var links []gameGenreRow
			if err := s.db.Where("game_id IN ?", gameIDs).Order("position").Find(&links).Error; err != nil {
				return err
			}
			g.genres = append(g.genres, links...)

			var reviews []reviewRow
			err := s.db.Where("game_id IN ?", gameIDs).Order("created_at, review_id").Find(&reviews).Error
			if err != nil {
				return err
			}
			queueReviews(reviews)
		}

		if len(pendingUsers) > 0 {
			names := pendingUsers
			pendingUsers = nil

			var users []userRow
			if err := s.db.Where("user_name IN ?", names).Find(&users).Error; err != nil {
				return err
			}
			g.users = append(g.users, users...)

			var reviews []reviewRow
			err := s.db.Where("user_name IN ?", names).Order("created_at, review_id").Find(&reviews).Error
			if err != nil {
				return err
			}
			queueReviews(reviews)

			var favourites []favouriteRow
			if err := s.db.Where("user_name IN ?", names).Order("added_at").Find(&favourites).Error; err != nil {
				return err
			}
			for _, row := range favourites {
				queueGame(row.GameID)
			}
			g.favourites = append(g.favourites, favourites...)

			var wishlist []wishlistGameRow
			if err := s.db.Where("user_name IN ?", names).Order("added_at").Find(&wishlist).Error; err != nil {
				return err
			}
			for _, row := range wishlist {
				queueGame(row.GameID)
			}
			g.wishlist = append(g.wishlist, wishlist...)
		}
	}

	return s.link(g)
}

// link turns the collected rows into models and wires them together.
// References to rows that do not exist are dropped.
func (s *session) link(g *graph) error {
	for _, row := range g.games {
		game := models.NewGame(row.GameID, row.Title)
		row.apply(game)
		s.games[row.GameID] = game
	}
	for _, row := range g.genres {
		if game := s.games[row.GameID]; game != nil {
			game.AddGenre(models.Genre{Name: row.GenreName})
		}
	}
	for _, row := range g.users {
		s.users[row.Username] = row.model()
	}

	sort.SliceStable(g.reviews, func(i, j int) bool {
		a, b := g.reviews[i], g.reviews[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ReviewID < b.ReviewID
	})
	for _, row := range g.reviews {
		user, game := s.users[row.Username], s.games[row.GameID]
		if user == nil || game == nil {
			continue
		}
		id, err := uuid.Parse(row.ReviewID)
		if err != nil {
			return fmt.Errorf("review %q: %w", row.ReviewID, err)
		}
		review, err := models.RestoreReview(id, user, game, row.Rating, row.Comment, row.CreatedAt)
		if err != nil {
			return fmt.Errorf("review %q: %w", row.ReviewID, err)
		}
		models.LinkReview(review)
		s.reviews[id] = review
	}

	for _, row := range g.favourites {
		user, game := s.users[row.Username], s.games[row.GameID]
		if user != nil && game != nil {
			user.AddFavourite(game)
		}
	}
	for _, row := range g.wishlist {
		user, game := s.users[row.Username], s.games[row.GameID]
		if user != nil && game != nil {
			user.Wishlist().Add(game)
		}
	}

	return nil
}
