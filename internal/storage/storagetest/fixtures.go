// Package storagetest provides a small catalog shared by repository and
// service tests.
package storagetest

import (
	"testing"

	"games_catalog/internal/models"
	"games_catalog/internal/storage"

	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	id          int64
	title       string
	releaseDate string
	price       float64
	publisher   string
}

var gameFixtures = []gameFixture{
	{7940, "Call of Duty® 4: Modern Warfare®", "Nov 12, 2007", 9.99, "Activision"},
	{311120, "The Stalin Subway: Red Veil", "Sep 29, 2014", 4.99, "Buka Entertainment"},
	{410320, "EARTH DEFENSE FORCE 4.1 The Shadow of New Despair", "Jul 18, 2016", 39.99, "D3PUBLISHER"},
	{1228870, "Bartlow's Dread Machine", "Oct 20, 2020", 19.99, "Beep Games, Inc."},
}

var UserFixtures = [][2]string{
	{"FirsttestUser1", "testUser1231"},
	{"SecondtestUser2", "testUser1232"},
	{"ThirdtestUser3", "testUser1233"},
	{"WagatestUser4", "testUser1234"},
	{"babagatestUser5", "testUser1235"},
}

type reviewFixture struct {
	user    string
	gameID  int64
	rating  int
	comment string
}

var reviewFixtures = []reviewFixture{
	{"FirsttestUser1", 1228870, 4, "Great co-op chaos."},
	{"SecondtestUser2", 1228870, 3, "Fun but short."},
	{"ThirdtestUser3", 1228870, 2, "Controls feel floaty and the camera fights you."},
	{"WagatestUser4", 1228870, 4, "Good"},
	{"babagatestUser5", 311120, 2, "Atmospheric, but buggy."},
}

// Games builds the four fixture games, all in the "Action" genre.
func Games(t testing.TB) []*models.Game {
	t.Helper()

	games := make([]*models.Game, 0, len(gameFixtures))
	for _, f := range gameFixtures {
		g := models.NewGame(f.id, f.title)
		g.ReleaseDate = f.releaseDate
		require.NoError(t, g.SetPrice(f.price))
		g.Description = "About " + f.title
		g.ImageURL = "https://cdn.example.com/" + f.title + ".jpg"
		p := models.NewPublisher(f.publisher)
		g.Publisher = &p
		g.AddGenre(models.NewGenre("Action"))
		games = append(games, g)
	}
	return games
}

// Populate loads the fixture games, users and reviews into repo.
func Populate(t testing.TB, repo storage.Repository) {
	t.Helper()

	for _, g := range Games(t) {
		require.NoError(t, repo.AddGame(g))
	}
	for _, u := range UserFixtures {
		require.NoError(t, repo.AddUser(models.NewUser(u[0], u[1])))
	}
	for _, f := range reviewFixtures {
		user, err := repo.GetUser(f.user)
		require.NoError(t, err)
		game, err := repo.GetGame(f.gameID)
		require.NoError(t, err)

		r, err := models.NewReview(user, game, f.rating, f.comment)
		require.NoError(t, err)
		require.NoError(t, repo.AddReview(r))
	}
}
