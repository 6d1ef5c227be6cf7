// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/dtos"
	"github.com/iyunix/go-habitcoach/internal/middleware"
)

// RouterDeps is everything NewRouter wires together.
type RouterDeps struct {
	Auth   *AuthHandler
	Chat   *ChatHandler
	User   *UserHandler
	Status *StatusHandler
	Tokens middleware.TokenResolver
	Logger Logger
}

// NewRouter builds the API. Cross-cutting middleware wraps the whole router so that
// preflight requests and unmatched routes pass through it too.
func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()

	requireAuth := middleware.RequireAuth(d.Tokens, d.Logger)
	optionalAuth := middleware.OptionalAuth(d.Tokens)

	// --- Public Routes ---
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.HandleFunc("/api/status", d.Status.GetStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/register", d.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", d.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/habits/goals", d.Chat.ListGoals).Methods(http.MethodGet)
	r.HandleFunc("/chat/conversation", d.Chat.Converse).Methods(http.MethodPost)

	// --- Optional-auth Routes ---
	r.Handle("/api/habits/qa", optionalAuth(http.HandlerFunc(d.Chat.AskQuestion))).Methods(http.MethodPost)

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireAuth)
	api.HandleFunc("/auth/logout", d.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/chat/send", d.Chat.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/history", d.Chat.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/chat/clear", d.Chat.ClearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/habits/select", d.Chat.SelectHabit).Methods(http.MethodPost)
	api.HandleFunc("/user/profile", d.User.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/user/profile", d.User.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/user/activity", d.User.LogActivity).Methods(http.MethodPost)
	api.HandleFunc("/user/activities", d.User.ListActivities).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dtos.NewErrorResponse(domain.KindNotFound, "route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, dtos.NewErrorResponse(domain.KindValidation, "method not allowed"))
	})

	var h http.Handler = r
	h = middleware.LoggingMiddleware(d.Logger)(h)
	h = middleware.RecoverPanic(d.Logger)(h)
	return middleware.CORS(h)
}
