package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hooprank/hooprank/controller"
	"github.com/unrolled/render"
)

const sessionCookie = "hooprank-session"

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/players", func(r chi.Router) {
		// Show either the search page if the q parameter is not present, or perform
		// the search if it is.
		r.Get("/", playerSearchHandler(ctrl, render))
		r.Get("/{playerID:[a-z0-9-]+}", getPlayerHandler(ctrl, render))
		r.Post("/{playerID:[a-z0-9-]+}", updatePlayerHandler(ctrl, render))
		r.Get("/{playerID:[a-z0-9-]+}/history", rankHistoryHandler(ctrl, render))
	})

	r.Route("/editions", func(r chi.Router) {
		r.Get("/", editionsRootHandler(ctrl, render))
		r.Get("/{editionID:\\d+}", editionHandler(ctrl, render))
		r.Get("/{editionID:\\d+}/players/{playerID:[a-z0-9-]+}", editionPlayerHandler(ctrl, render))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", searchPlayersJSONHandler(ctrl, render))
		r.Get("/players/{playerID:[a-z0-9-]+}", getPlayerJSONHandler(ctrl, render))
		r.Get("/players/{playerID:[a-z0-9-]+}/history", rankHistoryJSONHandler(ctrl, render))
		r.Get("/editions", listEditionsJSONHandler(ctrl, render))
		r.Get("/editions/{editionID:\\d+}", editionJSONHandler(ctrl, render))
	})

	r.Route("/oauth", func(r chi.Router) {
		r.Get("/login", oauthLoginHandler(ctrl, render))
		r.Get("/redirect", oauthRedirectHandler(ctrl, render))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireEditor(ctrl, render))
		r.Use(middleware.Timeout(2 * time.Minute)) // ingests fetch a remote page

		r.Post("/ingest", ingestEditionHandler(ctrl, render))
		r.Post("/editions/{editionID:\\d+}/delete", deleteEditionHandler(ctrl, render))
	})

	return r
}

// requireEditor gates mutating routes behind a completed editor sign-in.
func requireEditor(ctrl controller.C, render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookie)
			if err != nil || !ctrl.SessionValid(cookie.Value) {
				render.HTML(w, http.StatusUnauthorized, "401", "editor sign-in required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
