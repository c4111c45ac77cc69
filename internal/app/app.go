package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hitoshi/lifelog/internal/auth"
	"github.com/hitoshi/lifelog/internal/config"
	"github.com/hitoshi/lifelog/internal/database"
	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/handler"
	"github.com/hitoshi/lifelog/internal/logger"
	"github.com/hitoshi/lifelog/internal/metrics"
	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/repository"
	"github.com/hitoshi/lifelog/internal/security"
	"github.com/hitoshi/lifelog/internal/tracker"
	"github.com/hitoshi/lifelog/internal/user"
	"github.com/hitoshi/lifelog/internal/view"
	"github.com/hitoshi/lifelog/internal/worker/cleanup"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はWebサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// セッションクリーンアップはバックグラウンドゴルーチンで定期実行する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	identRepo := repository.NewPostgresIdentityRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	todoRepo := repository.NewPostgresTodoRepo(db)
	foodRepo := repository.NewPostgresFoodItemRepo(db)
	exerciseRepo := repository.NewPostgresExerciseRepo(db)
	sleepRepo := repository.NewPostgresSleepRepo(db)
	eventRepo := repository.NewPostgresCalendarEventRepo(db)

	// 3. セキュリティサービスの初期化
	sanitizer := security.NewTextSanitizer()

	// 4. OAuthプロバイダーの初期化（資格情報のないプロバイダーは登録しない）
	providers := make(map[string]auth.OAuthProvider)
	if cfg.GitHubEnabled() {
		providers["github"] = auth.NewGitHubOAuthProvider(auth.GitHubOAuthConfig{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL,
		})
	}
	if cfg.GoogleEnabled() {
		providers["google"] = auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		})
	}

	// 5. ドメインサービスの初期化
	authService := auth.NewService(providers, userRepo, identRepo, sessionRepo, auth.ServiceConfig{
		SessionMaxAge: cfg.SessionMaxAge,
		BcryptCost:    cfg.BcryptCost,
	})

	todoService := tracker.NewTodoService(todoRepo, sanitizer)
	foodService := tracker.NewFoodService(foodRepo, sanitizer)
	exerciseService := tracker.NewExerciseService(exerciseRepo, sanitizer)
	sleepService := tracker.NewSleepService(sleepRepo, sanitizer)
	eventService := tracker.NewEventService(eventRepo, sanitizer)

	// 退会時の記録削除順。ユーザー本体はサービス内で最後に削除する。
	userService := user.NewService(userRepo, identRepo, sessionRepo, []user.RecordDeleter{
		todoRepo, foodRepo, exerciseRepo, sleepRepo, eventRepo,
	}, cfg.BcryptCost)

	// 6. ビューとミドルウェア依存の初期化
	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	flashStore := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure, cfg.CookieDomain)

	loginLimiter := middleware.NewLoginRateLimiter(middleware.LoginRateLimiterConfig{
		RequestsPerMinute: cfg.RateLimitLogin,
	})
	defer loginLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		Renderer:      renderer,
		FlashStore:    flashStore,
		UserFinder:    userRepo,
		SessionFinder: sessionRepo,
		LoginLimiter:  loginLimiter,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		Logger:  slog.Default(),
		Metrics: metrics.New(),

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
			GitHubEnabled: cfg.GitHubEnabled(),
			GoogleEnabled: cfg.GoogleEnabled(),
		},

		UserService:     userService,
		TodoService:     todoService,
		FoodService:     foodService,
		ExerciseService: exerciseService,
		SleepService:    sleepService,
		EventService:    eventService,

		DB: db,
	}

	router := handler.NewRouter(deps)

	// 8. セッションクリーンアップのバックグラウンド起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purger := cleanup.NewPurger(sessionRepo, slog.Default())
	go purger.Start(ctx, cfg.SessionCleanupInterval)

	// 9. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("web server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down web server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("web server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
