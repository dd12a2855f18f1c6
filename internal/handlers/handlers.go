package handlers

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/middleware"
	"DataKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	credentialService *service.CredentialService,
	contactService *service.ContactService,
	noteService *service.NoteService,
	taskService *service.TaskService,
	limiter *middleware.RateLimiter,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(limiter.Handler)

	// Handlers
	credentialHandler := NewCredentialHandler(credentialService, logger, config)
	contactHandler := NewContactHandler(contactService, logger, config)
	noteHandler := NewNoteHandler(noteService, logger, config)
	taskHandler := NewTaskHandler(taskService, logger, config)

	// Credential routes
	r.Route("/api/credentials", func(r chi.Router) {
		r.Get("/", credentialHandler.List)
		r.Post("/", credentialHandler.Create)
		r.Get("/{id}", credentialHandler.GetOne)
		r.Put("/{id}", credentialHandler.Update)
		r.Delete("/{id}", credentialHandler.Delete)
		r.Post("/{id}/verify", credentialHandler.Verify)
	})

	// Contact routes
	r.Route("/api/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Get("/{id}", contactHandler.GetOne)
		r.Put("/{id}", contactHandler.Update)
		r.Delete("/{id}", contactHandler.Delete)
	})

	// Note routes
	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", noteHandler.List)
		r.Post("/", noteHandler.Create)
		r.Get("/{id}", noteHandler.GetOne)
		r.Put("/{id}", noteHandler.Update)
		r.Delete("/{id}", noteHandler.Delete)
	})

	// Task routes
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.GetOne)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return &Handler{Router: r}
}
