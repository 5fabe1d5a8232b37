package routes

import (
	"intern-match/internal/delivery/http/handler"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/domain/user"
	"intern-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups every mounted endpoint. Nil handlers are skipped.
type Handlers struct {
	Health          *handler.HealthHandler
	Auth            *handler.AuthHandler
	Profile         *handler.ProfileHandler
	Internships     *handler.InternshipHandler
	Recommendations *handler.RecommendationHandler
	Applications    *handler.ApplicationHandler
	Bookmarks       *handler.BookmarkHandler
	Chat            *handler.ChatHandler
	Admin           *handler.AdminHandler
	WS              *ws.Handler
}

type Registry struct {
	handlers  Handlers
	auth      *middleware.AuthMiddleware
	chatLimit fiber.Handler
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware, chatLimit fiber.Handler) *Registry {
	return &Registry{handlers: h, auth: auth, chatLimit: chatLimit}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.handlers.WS != nil {
		app.Get("/ws", r.handlers.WS.HandleEvents)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	h := r.handlers

	if h.Auth != nil {
		h.Auth.RegisterRoutes(api.Group("/auth"))
	}
	if h.Internships != nil {
		h.Internships.RegisterRoutes(api.Group("/internships"))
	}

	protected := r.auth.Middleware()
	if h.Profile != nil {
		h.Profile.RegisterRoutes(api.Group("/profile", protected))
	}
	if h.Recommendations != nil {
		h.Recommendations.RegisterRoutes(api.Group("/recommendations", protected))
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(api.Group("/applications", protected))
	}
	if h.Bookmarks != nil {
		h.Bookmarks.RegisterRoutes(api.Group("/bookmarks", protected))
	}
	if h.Chat != nil {
		chat := api.Group("/chat", protected)
		if r.chatLimit != nil {
			chat.Use(r.chatLimit)
		}
		h.Chat.RegisterRoutes(chat)
	}
	if h.Admin != nil {
		h.Admin.RegisterRoutes(api.Group("/admin", protected, r.auth.RequireRole(string(user.RoleAdmin))))
	}
}
