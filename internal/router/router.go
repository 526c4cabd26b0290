// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// admin console. Routes are split into the public login endpoint and the
// session-protected admin API.
package router

import (
	"github.com/go-chi/chi/v5"

	"blogconsole/internal/handlers"
	"blogconsole/internal/middleware"
)

// Handlers are the handler groups mounted by New.
type Handlers struct {
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Posts      *handlers.Posts
	Tags       *handlers.Tags
	Users      *handlers.Users
	Comments   *handlers.Comments
	Uploads    *handlers.Uploads
}

// Options configures the middleware chains.
type Options struct {
	Sessions      middleware.SessionGetter
	SecureCookies bool
	// LoginLimiter throttles POST /admin/login per client IP when set.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health check: no auth, no CSRF.
	r.Get("/health", handlers.Health)

	r.Route("/admin", func(r chi.Router) {
		// Login carries its own proof (the identity token) and happens
		// before the console holds a CSRF token.
		if opts.LoginLimiter != nil {
			r.With(opts.LoginLimiter.Middleware).Post("/login", h.Auth.Login)
		} else {
			r.Post("/login", h.Auth.Login)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewCSRF(opts.SecureCookies))
			r.Post("/logout", h.Auth.Logout)

			// Authenticated administrators only.
			r.Route("/api", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAdmin)

				r.Get("/me", h.Auth.Me)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/tree", h.Categories.Tree)
					r.Post("/move", h.Categories.Move)
					r.Post("/reload", h.Categories.Reload)
					r.Get("/reorders", h.Categories.Reorders)
					r.Get("/", h.Categories.List)
					r.Post("/", h.Categories.Create)
					r.Get("/{id}", h.Categories.Get)
					r.Patch("/{id}", h.Categories.Update)
					r.Delete("/{id}", h.Categories.Delete)
					r.Get("/{id}/parent-options", h.Categories.ParentOptions)
				})

				r.Route("/posts", func(r chi.Router) {
					r.Get("/", h.Posts.List)
					r.Post("/", h.Posts.Create)
					r.Post("/preview", h.Posts.Preview)
					r.Get("/{id}", h.Posts.Get)
					r.Patch("/{id}", h.Posts.Update)
					r.Delete("/{id}", h.Posts.Delete)
				})

				r.Route("/tags", func(r chi.Router) {
					r.Get("/", h.Tags.List)
					r.Post("/", h.Tags.Create)
					r.Get("/{id}", h.Tags.Get)
					r.Patch("/{id}", h.Tags.Update)
					r.Delete("/{id}", h.Tags.Delete)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.Users.List)
					r.Post("/sync", h.Users.Sync)
					r.Get("/{id}", h.Users.Get)
					r.Patch("/{id}", h.Users.Update)
				})

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", h.Comments.List)
					r.Patch("/{id}", h.Comments.SetStatus)
					r.Delete("/{id}", h.Comments.Delete)
				})

				r.Post("/uploads", h.Uploads.Upload)
			})
		})
	})

	return r
}
