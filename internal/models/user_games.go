package models

type User struct {
	username string
	Password string
	bio      *string

	reviews    []*Review
	favourites []*Game
	wishlist   *Wishlist
}

// NewUser creates the user together with its empty wishlist. password is
// expected to be a hash already.
func NewUser(username, password string) *User {
	u := &User{username: username, Password: password}
	u.wishlist = &Wishlist{owner: username}
	return u
}

func (u *User) Username() string {
	return u.username
}

// Equal compares users by exact username.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.username == other.username
}

// Bio returns false when no bio was ever set.
func (u *User) Bio() (string, bool) {
	if u.bio == nil {
		return "", false
	}
	return *u.bio, true
}

func (u *User) SetBio(bio string) {
	u.bio = &bio
}

func (u *User) Reviews() []*Review {
	out := make([]*Review, len(u.reviews))
	copy(out, u.reviews)
	return out
}

func (u *User) hasReview(r *Review) bool {
	for _, existing := range u.reviews {
		if existing.id == r.id {
			return true
		}
	}
	return false
}

func (u *User) Wishlist() *Wishlist {
	return u.wishlist
}

func (u *User) FavouriteGames() []*Game {
	out := make([]*Game, len(u.favourites))
	copy(out, u.favourites)
	return out
}

func (u *User) IsFavourite(game *Game) bool {
	return indexOfGame(u.favourites, game) >= 0
}

// AddFavourite reports whether the game was added; adding twice is a no-op.
func (u *User) AddFavourite(game *Game) bool {
	if game == nil || u.IsFavourite(game) {
		return false
	}
	u.favourites = append(u.favourites, game)
	return true
}

// RemoveFavourite reports whether the game was present.
func (u *User) RemoveFavourite(game *Game) bool {
	var removed bool
	u.favourites, removed = removeGame(u.favourites, game)
	return removed
}

type Wishlist struct {
	owner string
	games []*Game
}

func (w *Wishlist) Owner() string {
	return w.owner
}

func (w *Wishlist) Games() []*Game {
	out := make([]*Game, len(w.games))
	copy(out, w.games)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.games)
}

func (w *Wishlist) Contains(game *Game) bool {
	return indexOfGame(w.games, game) >= 0
}

func (w *Wishlist) Add(game *Game) bool {
	if game == nil || w.Contains(game) {
		return false
	}
	w.games = append(w.games, game)
	return true
}

func (w *Wishlist) Remove(game *Game) bool {
	var removed bool
	w.games, removed = removeGame(w.games, game)
	return removed
}

func indexOfGame(games []*Game, game *Game) int {
	if game == nil {
		return -1
	}
	for i, g := range games {
		if g.id == game.id {
			return i
		}
	}
	return -1
}

func removeGame(games []*Game, game *Game) ([]*Game, bool) {
	i := indexOfGame(games, game)
	if i < 0 {
		return games, false
	}
	return append(games[:i], games[i+1:]...), true
}
