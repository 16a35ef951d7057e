package routes

import (
	"net/http"
	"time"

	"blogspot/app/controllers"
	"blogspot/app/middleware"
	"blogspot/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Config holds everything the router needs.
type Config struct {
	Posts          *services.PostService
	Comments       *services.CommentService
	Logger         *zap.Logger
	Limiter        middleware.Limiter // nil disables rate limiting
	RequestTimeout time.Duration
}

// SetupRoutes defines the application's routes and returns the handler with
// the middleware chain applied. The chain wraps the router itself so that
// unmatched requests are logged and tagged too.
func SetupRoutes(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := mux.NewRouter()
	postController := controllers.NewPostController(cfg.Posts, log)
	commentController := controllers.NewCommentController(cfg.Comments, log)

	router.HandleFunc("/", controllers.Home).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("", controllers.APIStatus).Methods("GET")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	for _, root := range []string{"", "/"} {
		posts.HandleFunc(root, postController.Index).Methods("GET")
		posts.HandleFunc(root, postController.Create).Methods("POST")
	}
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{id}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")

	// Subrouters answer for their own prefix, so each needs the handlers.
	for _, r := range []*mux.Router{router, api, posts} {
		r.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
		r.MethodNotAllowedHandler = http.HandlerFunc(controllers.NotFound)
	}

	var h http.Handler = router
	h = middleware.ContentTypeJSON(h)
	if cfg.Limiter != nil {
		h = middleware.RateLimit(cfg.Limiter, log)(h)
	}
	h = middleware.Timeout(cfg.RequestTimeout)(h)
	h = middleware.Recoverer(log)(h)
	h = middleware.Logger(log)(h)
	h = middleware.RequestID(h)
	return h
}
