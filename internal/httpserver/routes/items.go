package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/waygate-dev/waygate/internal/httpserver/deps"
	"github.com/waygate-dev/waygate/internal/httpserver/handlers"
)

func init() { Register(registerItems) }

func registerItems(r chi.Router, d deps.Deps) {
	r.Route("/items", func(r chi.Router) {
		r.Post("/", handlers.CreateItem(d))
		r.Get("/", handlers.ListItems(d))
		r.Delete("/{id}", handlers.DeleteItem(d))
	})
}
