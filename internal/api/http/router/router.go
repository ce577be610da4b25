// Package router wires the HTTP handlers onto a mux router.
package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/skillswap/skillswap-server/internal/api/http/handler"
	"github.com/skillswap/skillswap-server/internal/logger"
)

// Router assembles the HTTP surface of the engine.
type Router struct {
	matchHandler  *handler.Match
	reviewHandler *handler.Review
	userHandler   *handler.User
	allowedOrigin string
	logger        *logger.Logger
}

func New(
	matchHandler *handler.Match,
	reviewHandler *handler.Review,
	userHandler *handler.User,
	allowedOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		matchHandler:  matchHandler,
		reviewHandler: reviewHandler,
		userHandler:   userHandler,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

// Register builds the route table and returns the root handler.
func (rt *Router) Register() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/matches/run-sweep", rt.matchHandler.RunSweep).Methods(http.MethodPost)
	api.HandleFunc("/matches/my-matches", rt.matchHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/matches/{matchID}", rt.matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/{matchID}/accept", rt.matchHandler.Accept).Methods(http.MethodPost)
	api.HandleFunc("/matches/{matchID}/decline", rt.matchHandler.Decline).Methods(http.MethodPost)

	api.HandleFunc("/reviews", rt.reviewHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/reviews/user/{userID}", rt.reviewHandler.ListForUser).Methods(http.MethodGet)

	api.HandleFunc("/users/{userID}", rt.userHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/profile", rt.userHandler.UpdateProfile).Methods(http.MethodPut)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{rt.allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
