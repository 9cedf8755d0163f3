package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultRequestTimeout = 30 * time.Second

func (h *Handler) Init() *chi.Mux {
	timeout := h.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Timeout(timeout))
	router.Use(middleware.Compress(5, "application/json"))

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Get("/logout", h.logout)
		r.Post("/reset-password", h.resetPassword)
		r.Post("/verify/{userId}/{otp}", h.redeemVerification)

		r.With(h.limiter.Limit).Post("/register", h.register)
		r.With(h.limiter.Limit).Post("/login", h.login)
		r.With(h.limiter.Limit).Post("/forgot-password", h.forgotPassword)
	})

	// routes for any signed-in account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/user", h.currentUser)
		r.Get("/fetch-user", h.fetchUser)

		r.Get("/users/users/{userId}", h.getUser)
		r.Put("/users/users/{userId}", h.updateUser)
		r.Get("/users/fetch-latest/{userId}", h.userActivities)

		r.Get("/questions/fetch-data", h.fetchQuestionData)
		r.Get("/questions/fetch", h.fetchQuestions)
		r.Get("/questions/refresh", h.refreshQuestions)
		r.Get("/questions/search/{questionText}", h.searchQuestions)
		r.Get("/questions/programs", h.listPrograms)
		r.Get("/questions/competencies", h.listCompetencies)

		r.Get("/room", h.listRooms)

		r.Post("/exams/results", h.saveExamResult)
		r.Post("/exam-room/results", h.saveRoomResult)

		r.Get("/dashboard/fetch-latest", h.fetchLatest)
		r.Get("/dashboard/fetch-exam-room", h.fetchExamRoom)
		r.Get("/dashboard/fetch-rankings", h.fetchRankings)
	})

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)

		r.Get("/verify/unverified-users", h.unverifiedUsers)
		r.Post("/verify/send-verification/{userId}", h.sendVerification)
		r.Post("/verify/accept-user/{userId}", h.acceptUser)
		r.Post("/verify/reject-user/{userId}", h.rejectUser)

		r.Get("/users/users", h.listUsers)
		r.Delete("/users/users/{userId}", h.deleteUser)
		r.Get("/users/user-stats", h.userStats)

		r.Post("/questions/create", h.createQuestion)
		r.Put("/questions/update/{questionId}", h.updateQuestion)
		r.Delete("/questions/delete/{questionId}", h.deleteQuestion)

		r.Post("/room", h.createRoom)
	})

	return router
}
