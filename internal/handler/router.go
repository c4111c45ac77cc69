package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/metrics"
	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/view"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// 描画まわり
	Renderer   *view.Renderer
	FlashStore *flash.Store
	UserFinder UserFinder

	// ミドルウェア依存
	SessionFinder middleware.SessionFinder
	LoginLimiter  *middleware.LoginRateLimiter
	CSRFConfig    middleware.CSRFConfig
	Logger        *slog.Logger
	Metrics       *metrics.Metrics

	// サービス
	AuthService     AuthServiceInterface
	AuthConfig      AuthHandlerConfig
	UserService     UserServiceInterface
	TodoService     TodoServiceInterface
	FoodService     FoodServiceInterface
	ExerciseService ExerciseServiceInterface
	SleepService    SleepServiceInterface
	EventService    EventServiceInterface

	// ヘルスチェック
	DB *sql.DB
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → Metrics → CSRF
//
// 記録系のルートはさらにSessionミドルウェアで保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	b := base{
		renderer:   deps.Renderer,
		flashStore: deps.FlashStore,
		userFinder: deps.UserFinder,
	}

	authHandler := NewAuthHandler(b, deps.AuthService, deps.AuthConfig)
	homeHandler := NewHomeHandler(b, deps.AuthService)
	profileHandler := NewProfileHandler(b, deps.UserService, deps.AuthConfig.CookieSecure, deps.AuthConfig.CookieDomain)
	todoHandler := NewTodoHandler(b, deps.TodoService)
	dietHandler := NewDietHandler(b, deps.FoodService)
	fitnessHandler := NewFitnessHandler(b, deps.ExerciseService)
	sleepHandler := NewSleepHandler(b, deps.SleepService)
	calendarHandler := NewCalendarHandler(b, deps.EventService)

	// --- 認証不要のルート ---

	r.Get("/", homeHandler.Home)
	r.Get("/health", NewHealthHandler(deps.DB))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	r.Method(http.MethodGet, "/static/*", view.StaticHandler())

	// ログイン・登録（POSTはIP単位のレート制限付き）
	r.Group(func(r chi.Router) {
		r.Use(deps.LoginLimiter.Middleware())
		r.Get("/login", authHandler.ShowLogin)
		r.Post("/login", authHandler.Login)
		r.Get("/register", authHandler.ShowRegister)
		r.Post("/register", authHandler.Register)
	})

	r.Get("/logout", authHandler.Logout)

	// OAuthフロー
	r.Route("/auth/{provider}", func(r chi.Router) {
		r.Get("/", authHandler.OAuthLogin)
		r.Get("/callback", authHandler.OAuthCallback)
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))

		r.Get("/pomodoro", homeHandler.Pomodoro)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Show)
			r.Get("/edit", profileHandler.ShowEdit)
			r.Post("/edit", profileHandler.Edit)
			r.Post("/delete", profileHandler.Delete)
		})

		r.Route("/todo", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/add", todoHandler.Add)
			r.Get("/edit/{id}", todoHandler.ShowEdit)
			r.Post("/edit/{id}", todoHandler.Edit)
			r.Post("/toggle/{id}", todoHandler.Toggle)
			r.Post("/delete/{id}", todoHandler.Delete)
		})

		r.Route("/diet", func(r chi.Router) {
			r.Get("/", dietHandler.List)
			r.Post("/add", dietHandler.Add)
			r.Get("/edit/{id}", dietHandler.ShowEdit)
			r.Post("/edit/{id}", dietHandler.Edit)
			r.Post("/delete/{id}", dietHandler.Delete)
		})

		r.Route("/fitness", func(r chi.Router) {
			r.Get("/", fitnessHandler.List)
			r.Post("/add", fitnessHandler.Add)
			r.Get("/edit/{id}", fitnessHandler.ShowEdit)
			r.Post("/edit/{id}", fitnessHandler.Edit)
			r.Post("/delete/{id}", fitnessHandler.Delete)
		})

		r.Route("/sleep", func(r chi.Router) {
			r.Get("/", sleepHandler.List)
			r.Post("/add", sleepHandler.Add)
			r.Get("/edit/{id}", sleepHandler.ShowEdit)
			r.Post("/edit/{id}", sleepHandler.Edit)
			r.Post("/delete/{id}", sleepHandler.Delete)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", calendarHandler.List)
			r.Post("/add", calendarHandler.Add)
			r.Get("/edit/{id}", calendarHandler.ShowEdit)
			r.Post("/edit/{id}", calendarHandler.Edit)
			r.Post("/delete/{id}", calendarHandler.Delete)
		})
	})

	return r
}
