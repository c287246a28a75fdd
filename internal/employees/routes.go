package employees

import "github.com/go-chi/chi/v5"

// MountRoutes registers the employee routes. All routes require a session;
// mutating routes additionally require an editor role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireSession)
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)

		r.Group(func(r chi.Router) {
			r.Use(h.guard.RequireRole(h.editors...))
			r.Get("/new", h.NewForm)
			r.Post("/new", h.Create)
			r.Get("/{id}/edit", h.EditForm)
			r.Post("/{id}/edit", h.Update)
			r.Post("/{id}/delete", h.Delete)
		})
	})
}
