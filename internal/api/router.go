package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Reads are public; anything that mutates
// state runs behind the Authenticate middleware.
func NewRouter(a *API, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/healthz", a.Health(db))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", a.Login)
			r.Get("/users", a.GetAllUsers)
			r.Get("/users/{id}", a.GetUser)

			r.Group(func(r chi.Router) {
				r.Use(a.Authenticate)
				r.Post("/register", a.Register)
				r.Patch("/users/{id}", a.UpdateUser)
				r.Delete("/users/{id}", a.DeleteUser)
			})
		})

		r.Route("/token", func(r chi.Router) {
			r.Post("/refresh", a.RefreshToken)
			r.Post("/logout", a.Logout)
		})

		r.Route("/stack", func(r chi.Router) {
			r.Get("/", a.GetAllStacks)
			r.Get("/{id}", a.GetStack)
			r.Get("/title/{title}", a.GetStackByTitle)

			r.Group(func(r chi.Router) {
				r.Use(a.Authenticate)
				r.Post("/", a.CreateStack)
				r.Patch("/{id}", a.UpdateStack)
				r.Delete("/{id}", a.DeleteStack)
			})
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", a.GetAllBlogs)
			r.Get("/{id}", a.GetBlog)

			r.Group(func(r chi.Router) {
				r.Use(a.Authenticate)
				r.Post("/", a.CreateBlog)
				r.Patch("/{id}", a.UpdateBlog)
				r.Delete("/{id}", a.DeleteBlog)
			})
		})

		r.Route("/project", func(r chi.Router) {
			r.Get("/", a.GetAllProjects)
			r.Get("/{id}", a.GetProject)

			r.Group(func(r chi.Router) {
				r.Use(a.Authenticate)
				r.Post("/", a.CreateProject)
				r.Patch("/{id}", a.UpdateProject)
				r.Delete("/{id}", a.DeleteProject)
			})
		})

		r.Route("/image", func(r chi.Router) {
			r.Use(a.Authenticate)
			r.Post("/upload", a.UploadImage)
			r.Post("/upload/file", a.UploadImageFile)
		})
	})

	return r
}
