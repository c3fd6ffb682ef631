package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/templui/habitkit/internal/app"
	"github.com/templui/habitkit/internal/handler"
	"github.com/templui/habitkit/internal/markdown"
	"github.com/templui/habitkit/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	account := handler.NewAccountHandler(app.AuthService, app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService)
	dashboard := handler.NewDashboardHandler(app.HabitService)
	settings := handler.NewSettingsHandler()
	habit := handler.NewHabitHandler(app.HabitService, app.HabitLogService, markdown.NewParser())
	habitLog := handler.NewHabitLogHandler(app.HabitLogService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /healthz", home.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Auth (rate limited)
	authLimiter := middleware.RateLimitAuth(app.Cfg.RateLimitAuth, app.Cfg.RateLimitAuthWindow)

	mux.HandleFunc("GET /auth", middleware.RequireGuest(auth.AuthPage))
	mux.HandleFunc("GET /auth/onboarding", middleware.RequireAuth(auth.OnboardingPage))
	mux.HandleFunc("GET /auth/magic-link/{token}", authLimiter(auth.VerifyMagicLink))
	mux.HandleFunc("POST /auth/magic-link", authLimiter(middleware.RequireGuest(auth.SendMagicLink)))
	mux.HandleFunc("POST /auth/onboarding", middleware.RequireAuth(auth.CompleteOnboarding))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// App Pages
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.DashboardPage))
	mux.HandleFunc("GET /app/settings", middleware.RequireAuth(settings.SettingsPage))

	// Profile & Account
	mux.HandleFunc("PATCH /app/profile/name", middleware.RequireAuth(profile.UpdateName))
	mux.HandleFunc("DELETE /app/account", middleware.RequireAuth(account.DeleteAccount))

	// Habits
	mux.HandleFunc("GET /app/habits", middleware.RequireAuth(habit.HabitsPage))
	mux.HandleFunc("GET /app/habits/export", middleware.RequireAuth(export.Export))
	mux.HandleFunc("GET /app/habits/{id}", middleware.RequireAuth(habit.HabitDetailPage))
	mux.HandleFunc("POST /app/habits", middleware.RequireAuth(habit.Create))
	mux.HandleFunc("PUT /app/habits/{id}", middleware.RequireAuth(habit.Update))
	mux.HandleFunc("POST /app/habits/{id}/archive", middleware.RequireAuth(habit.Archive))
	mux.HandleFunc("DELETE /app/habits/{id}", middleware.RequireAuth(habit.Delete))

	// Habit logs (JSON)
	logLimiter := middleware.RateLimitLogs(app.Cfg.RateLimitLogs, app.Cfg.RateLimitLogsWindow)

	mux.HandleFunc("GET /app/habits/{id}/logs", middleware.RequireAuthAPI(habitLog.Range))
	mux.HandleFunc("GET /app/habits/{id}/stats", middleware.RequireAuthAPI(habitLog.Stats))
	mux.HandleFunc("POST /app/habits/{id}/logs", logLimiter(middleware.RequireAuthAPI(habitLog.Upsert)))
	mux.HandleFunc("DELETE /app/habits/{id}/logs", logLimiter(middleware.RequireAuthAPI(habitLog.Delete)))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),  // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.WithURLPath,
		middleware.NonceMiddleware,  // must be before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.ProfileService),
		middleware.CSRFProtection,
		middleware.PrometheusMetrics, // innermost so r.Pattern is set by the mux
	)

	return handler
}
