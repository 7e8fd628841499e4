package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"wordscramble/internal/dictionary"
	"wordscramble/internal/game"
	"wordscramble/internal/savefile"
	"wordscramble/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	setupLogging(cfg.LogLevel, cfg.IsProduction)
	logInfo("Starting %s in %s mode", PageTitle, envName(cfg.IsProduction))

	src, err := loadVocabulary(cfg.WordsFile)
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Loaded %d words", src.Len())

	dict := dictionary.New(
		dictionary.WithEndpoint(cfg.DictionaryURL),
		dictionary.WithTimeout(cfg.DictionaryTimeout),
	)
	store := savefile.New(cfg.SaveFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := game.NewController(src, dict, store)
	go ctrl.Run(ctx)

	backdrop := NewBackdrop(clockwork.NewRealClock(), BackdropInterval, BackdropColors)
	go backdrop.Run(ctx)

	app, err := newApp(cfg, ctrl, backdrop, src.Len())
	if err != nil {
		logFatal("Failed to load assets: %v", err)
	}

	startServer(ctx, app.newRouter(), cfg)
}

// loadConfig reads host settings from the environment.
func loadConfig() Config {
	return Config{
		BindAddr:          getEnv("BIND_ADDR", "127.0.0.1"),
		Port:              getEnv("PORT", "8080"),
		IsProduction:      os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		WordsFile:         os.Getenv("WORDS_FILE"),
		SaveFile:          getEnv("SAVE_FILE", savefile.DefaultPath),
		DictionaryURL:     getEnv("DICTIONARY_URL", dictionary.DefaultEndpoint),
		DictionaryTimeout: getEnvDuration("DICTIONARY_TIMEOUT", dictionary.DefaultTimeout),
		RateLimitRPS:      getEnvInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		StaticCacheAge:    getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
	}
}

func loadVocabulary(path string) (*words.Source, error) {
	if path == "" {
		return words.Default()
	}
	return words.Load(path)
}

// newApp builds the presentation around a running controller.
func newApp(cfg Config, ctrl *game.Controller, backdrop *Backdrop, vocabularySize int) (*App, error) {
	assets, err := loadAssets(cfg.IsProduction)
	if err != nil {
		return nil, err
	}
	return &App{
		Game:           ctrl,
		Backdrop:       backdrop,
		Assets:         assets,
		IsProduction:   cfg.IsProduction,
		StartTime:      time.Now(),
		VocabularySize: vocabularySize,
		SavePath:       cfg.SaveFile,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		StaticCacheAge: cfg.StaticCacheAge,
		LimiterMap:     make(map[string]*rate.Limiter),
	}, nil
}

func (app *App) newRouter() *gin.Engine {
	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))
	router.Use(requestIDMiddleware())
	router.Use(app.cacheHeadersMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.SetHTMLTemplate(app.Assets.Templates)

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteState, app.stateHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	router.GET(RouteStatic+"/*filepath", app.staticHandler)

	actions := router.Group("/", app.rateLimitMiddleware())
	actions.POST(RouteStart, app.startHandler)
	actions.POST(RouteGuess, app.guessHandler)
	actions.POST(RouteHint, app.hintHandler)
	actions.POST(RouteNewWord, app.newWordHandler)
	actions.POST(RouteResume, app.resumeHandler)
	actions.POST(RouteSave, app.saveHandler)
	actions.POST(RouteLoad, app.loadHandler)

	return router
}

func startServer(ctx context.Context, router *gin.Engine, cfg Config) {
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", "http://"+srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
