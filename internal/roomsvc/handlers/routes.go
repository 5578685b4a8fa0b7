package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		// the verifier only parses tokens; game routes stay public and the
		// developer role is picked up when a valid token is present
		r.Use(jwtauth.Verifier(h.tokenAuth))

		r.Post("/games", h.CreateGame)

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Post("/join", h.JoinGame)
			r.Post("/reconnect", h.ReconnectPlayer)
			r.Post("/start", h.StartGame)
			r.Post("/pause", h.PauseGame)
			r.Post("/resume", h.ResumeGame)
			r.Post("/reset", h.ResetGame)
			r.Post("/call", h.CallNumber)
			r.Post("/claim", h.ClaimBingo)
			r.Post("/mark", h.MarkCard)
			r.Put("/pattern", h.UpdatePattern)
			r.Post("/messages", h.PostMessage)
			r.Post("/players/{playerID}/remove", h.RemovePlayer)

			// developer side-channel, token required
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Authenticator)

				r.Put("/stage", h.StageNumber)
				r.Get("/queue", h.GetQueue)
				r.Post("/queue", h.PushQueue)
				r.Post("/queue/call", h.CallFromQueue)
				r.Delete("/queue", h.ClearQueue)
			})
		})

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
		})
	})
}
