package mariadb

import (
	"fmt"
	"time"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var doNothing = clause.OnConflict{DoNothing: true}

// AddGame merges the game into the catalog together with its genres and
// publisher. A game whose id is already stored is overwritten.
func (r *Repository) AddGame(game *models.Game) error {
	const op = "storage.mariadb.AddGame"

	if game == nil {
		return nil
	}

	row := newGameRow(game)
	genres := game.Genres()

	err := r.withTx(op, func(tx *gorm.DB) error {
		return upsertGame(tx, game, true)
	})
	if err != nil {
		return err
	}

	s := r.session()
	if mapped := s.games[game.ID()]; mapped != nil && mapped != game {
		row.apply(mapped)
		mapped.SetGenres(genres...)
		return nil
	}
	s.games[game.ID()] = game

	return nil
}

func (r *Repository) AddReview(review *models.Review) error {
	const op = "storage.mariadb.AddReview"

	if review == nil {
		return nil
	}

	s := r.session()
	if s.reviews[review.ID()] != nil {
		return nil
	}

	user := review.User()
	row := newReviewRow(review)

	err := r.withTx(op, func(tx *gorm.DB) error {
		if err := upsertUser(tx, user); err != nil {
			return err
		}
		if err := upsertGame(tx, review.Game(), false); err != nil {
			return err
		}
		return tx.Clauses(doNothing).Create(&row).Error
	})
	if err != nil {
		return err
	}

	models.LinkReview(review)
	s.reviews[review.ID()] = review
	r.track(user)
	r.trackGame(review.Game())

	return nil
}

func (r *Repository) AddUser(user *models.User) error {
	const op = "storage.mariadb.AddUser"

	if user == nil {
		return nil
	}

	row := newUserRow(user)

	err := r.withTx(op, func(tx *gorm.DB) error {
		var existing []userRow
		if err := tx.Where("user_name = ?", row.Username).Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return storage.ErrExists
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}

	r.track(user)
	return nil
}

func (r *Repository) AddToWishlist(user *models.User, game *models.Game) error {
	const op = "storage.mariadb.AddToWishlist"

	if user == nil || game == nil || user.Wishlist().Contains(game) {
		return nil
	}

	err := r.withTx(op, func(tx *gorm.DB) error {
		if err := upsertUser(tx, user); err != nil {
			return err
		}
		if err := upsertGame(tx, game, false); err != nil {
			return err
		}
		row := wishlistGameRow{Username: user.Username(), GameID: game.ID(), AddedAt: time.Now().UTC()}
		return tx.Clauses(doNothing).Create(&row).Error
	})
	if err != nil {
		return err
	}

	user.Wishlist().Add(game)
	r.track(user)
	r.trackGame(game)
	return nil
}

func (r *Repository) RemoveFromWishlist(user *models.User, game *models.Game) error {
	const op = "storage.mariadb.RemoveFromWishlist"

	if user == nil || game == nil || !user.Wishlist().Contains(game) {
		return nil
	}

	err := r.withTx(op, func(tx *gorm.DB) error {
		return tx.Where("user_name = ? AND game_id = ?", user.Username(), game.ID()).
			Delete(&wishlistGameRow{}).Error
	})
	if err != nil {
		return err
	}

	user.Wishlist().Remove(game)
	return nil
}

func (r *Repository) AddToFavourites(user *models.User, game *models.Game) error {
	const op = "storage.mariadb.AddToFavourites"

	if user == nil || game == nil || user.IsFavourite(game) {
		return nil
	}

	err := r.withTx(op, func(tx *gorm.DB) error {
		if err := upsertUser(tx, user); err != nil {
			return err
		}
		if err := upsertGame(tx, game, false); err != nil {
			return err
		}
		row := favouriteRow{Username: user.Username(), GameID: game.ID(), AddedAt: time.Now().UTC()}
		return tx.Clauses(doNothing).Create(&row).Error
	})
	if err != nil {
		return err
	}

	user.AddFavourite(game)
	r.track(user)
	r.trackGame(game)
	return nil
}

func (r *Repository) RemoveFromFavourites(user *models.User, game *models.Game) error {
	const op = "storage.mariadb.RemoveFromFavourites"

	if user == nil || game == nil || !user.IsFavourite(game) {
		return nil
	}

	err := r.withTx(op, func(tx *gorm.DB) error {
		return tx.Where("user_name = ? AND game_id = ?", user.Username(), game.ID()).
			Delete(&favouriteRow{}).Error
	})
	if err != nil {
		return err
	}

	user.RemoveFavourite(game)
	return nil
}

func (r *Repository) ChangeBio(user *models.User, bio string) error {
	const op = "storage.mariadb.ChangeBio"

	row := newUserRow(user)
	row.Bio = &bio

	err := r.withTx(op, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			DoUpdates: clause.AssignmentColumns([]string{"bio"}),
		}).Create(&row).Error
	})
	if err != nil {
		return err
	}

	user.SetBio(bio)
	r.track(user)
	return nil
}

func (r *Repository) GetGames() ([]*models.Game, error) {
	const op = "storage.mariadb.GetGames"

	s := r.session()

	var rows []gameRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.load(rows, nil, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.collectGames(rows), nil
}

func (r *Repository) GetNumberOfGames() (int, error) {
	const op = "storage.mariadb.GetNumberOfGames"

	var n int64
	if err := r.session().db.Model(&gameRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

func (r *Repository) GetGenres() ([]models.Genre, error) {
	const op = "storage.mariadb.GetGenres"

	var rows []genreRow
	if err := r.session().db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Genre, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Genre{Name: row.Name})
	}
	query.SortGenres(out)

	return out, nil
}

func (r *Repository) GetPublishers() ([]models.Publisher, error) {
	const op = "storage.mariadb.GetPublishers"

	var rows []publisherRow
	if err := r.session().db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Publisher, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Publisher{Name: row.Name})
	}
	query.SortPublishers(out)

	return out, nil
}

func (r *Repository) GetGamesByGenre(genre string) ([]*models.Game, error) {
	const op = "storage.mariadb.GetGamesByGenre"

	s := r.session()

	var ids []int64
	if err := s.db.Model(&gameGenreRow{}).Where("genre_name = ?", genre).Pluck("game_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(ids) == 0 {
		return []*models.Game{}, nil
	}

	if err := s.load(nil, ids, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*models.Game, 0, len(ids))
	for _, id := range ids {
		if g := s.games[id]; g != nil {
			out = append(out, g)
		}
	}
	query.SortByTitle(out)

	return out, nil
}

func (r *Repository) GetSublist(games []*models.Game, size int) ([][]*models.Game, error) {
	return query.Sublist(games, size)
}

func (r *Repository) GetSortedDataset(sortMode string, games []*models.Game) ([]*models.Game, error) {
	if games == nil {
		all, err := r.GetGames()
		if err != nil {
			return nil, err
		}
		games = all
	}
	return query.SortGames(games, sortMode)
}

func (r *Repository) GetSortedReviewsForGame(game *models.Game, sortOption string) []*models.Review {
	return query.SortReviews(game.Reviews(), sortOption)
}

// GetGame returns nil when no game has the id.
func (r *Repository) GetGame(id int64) (*models.Game, error) {
	const op = "storage.mariadb.GetGame"

	s := r.session()
	if g := s.games[id]; g != nil {
		return g, nil
	}

	if err := s.load(nil, []int64{id}, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.games[id], nil
}

// GetUser returns nil when no user has the exact username.
func (r *Repository) GetUser(username string) (*models.User, error) {
	const op = "storage.mariadb.GetUser"

	s := r.session()
	if u := s.users[username]; u != nil {
		return u, nil
	}

	if err := s.load(nil, nil, []string{username}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.users[username], nil
}

// GetUsers returns every user ordered by username.
func (r *Repository) GetUsers() ([]*models.User, error) {
	const op = "storage.mariadb.GetUsers"

	s := r.session()

	var names []string
	if err := s.db.Model(&userRow{}).Order("user_name").Pluck("user_name", &names).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(names) == 0 {
		return []*models.User{}, nil
	}

	if err := s.load(nil, nil, names); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*models.User, 0, len(names))
	for _, name := range names {
		if u := s.users[name]; u != nil {
			out = append(out, u)
		}
	}

	return out, nil
}

// track maps a user written through this session so later lookups return
// the same object.
func (r *Repository) track(user *models.User) {
	s := r.session()
	if s.users[user.Username()] == nil {
		s.users[user.Username()] = user
	}
}

func (r *Repository) trackGame(game *models.Game) {
	s := r.session()
	if s.games[game.ID()] == nil {
		s.games[game.ID()] = game
	}
}

func (s *session) collectGames(rows []gameRow) []*models.Game {
	out := make([]*models.Game, 0, len(rows))
	for _, row := range rows {
		if g := s.games[row.GameID]; g != nil {
			out = append(out, g)
		}
	}
	query.SortByTitle(out)
	return out
}

// upsertGame stores the game together with its publisher and genres. With
// replace set the stored row is overwritten and the genre links rebuilt;
// otherwise an already stored game is left untouched.
func upsertGame(tx *gorm.DB, game *models.Game, replace bool) error {
	row := newGameRow(game)
	genres := game.Genres()

	if len(genres) > 0 {
		rows := make([]genreRow, 0, len(genres))
		for _, g := range genres {
			rows = append(rows, genreRow{Name: g.Name})
		}
		if err := tx.Clauses(doNothing).Create(&rows).Error; err != nil {
			return err
		}
	}

	if row.PublisherName != nil {
		if err := tx.Clauses(doNothing).Create(&publisherRow{Name: *row.PublisherName}).Error; err != nil {
			return err
		}
	}

	onConflict := doNothing
	if replace {
		onConflict = clause.OnConflict{UpdateAll: true}
	}
	if err := tx.Clauses(onConflict).Create(&row).Error; err != nil {
		return err
	}

	if replace {
		if err := tx.Where("game_id = ?", row.GameID).Delete(&gameGenreRow{}).Error; err != nil {
			return err
		}
	}

	if len(genres) > 0 {
		links := make([]gameGenreRow, 0, len(genres))
		for i, g := range genres {
			links = append(links, gameGenreRow{GameID: row.GameID, GenreName: g.Name, Position: i})
		}
		if err := tx.Clauses(doNothing).Create(&links).Error; err != nil {
			return err
		}
	}

	return nil
}

func upsertUser(tx *gorm.DB, user *models.User) error {
	row := newUserRow(user)
	return tx.Clauses(doNothing).Create(&row).Error
}
