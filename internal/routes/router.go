package routes

import (
	"log/slog"

	"games_catalog/internal/controllers"
	appmw "games_catalog/internal/middleware"
	"games_catalog/internal/services"
	"games_catalog/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRouter(log *slog.Logger, repo storage.Repository) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmw.NewRequestScope(repo).Handler)

	gameService := services.NewGameService(repo, log)
	searchService := services.NewSearchService(repo, log)
	authService := services.NewAuthService(repo, log)
	userService := services.NewUserService(repo, log)

	gameController := controllers.NewGameController(gameService, log)
	searchController := controllers.NewSearchController(searchService, log)
	authController := controllers.NewAuthController(log, authService)
	userController := controllers.NewUserController(userService, log)

	requireUser := appmw.NewAuthMiddleware(authService, log).RequireUser

	r.Route("/api", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameController.GetAll)
			r.Get("/pages", gameController.GetPages)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", gameController.GetByID)
				r.Get("/reviews", gameController.GetReviews)
				r.With(requireUser).Post("/reviews", gameController.CreateReview)
			})
		})

		r.Get("/genres", gameController.GetGenres)
		r.Get("/genres/{name}/games", gameController.GetGenreGames)
		r.Get("/publishers", gameController.GetPublishers)
		r.Get("/search", searchController.Search)

		r.Post("/auth/register", authController.Register)
		r.Post("/auth/login", authController.Login)

		r.Route("/me", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/", userController.Profile)
			r.Put("/bio", userController.UpdateBio)
			r.Get("/games/{id}", gameController.GetStatus)
			r.Put("/wishlist/{id}", gameController.AddToWishlist)
			r.Delete("/wishlist/{id}", gameController.RemoveFromWishlist)
			r.Put("/favourites/{id}", gameController.AddToFavourites)
			r.Delete("/favourites/{id}", gameController.RemoveFromFavourites)
		})
	})

	return r
}
