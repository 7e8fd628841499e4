package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// homeHandler renders the full game page.
func (app *App) homeHandler(c *gin.Context) {
	v, err := app.Game.View(c.Request.Context())
	if err != nil {
		app.unavailable(c, err)
		return
	}
	c.HTML(http.StatusOK, templateIndex, app.pageData(c, app.boardData(v)))
}

// stateHandler renders the current board; the page polls it every second.
func (app *App) stateHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.View(ctx)
		return app.boardData(v), err
	})
}

// startHandler begins a fresh 60 second game.
func (app *App) startHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.Start(ctx)
		return app.boardData(v), err
	})
}

// guessHandler checks the submitted guess against the current word.
func (app *App) guessHandler(c *gin.Context) {
	guess := normalizeGuess(c.PostForm("guess"))
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.SubmitGuess(ctx, guess)
		return app.boardData(v), err
	})
}

func (app *App) hintHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		hint, v, err := app.Game.RequestHint(ctx)
		board := app.boardData(v)
		board.Hint = hint
		return board, err
	})
}

func (app *App) newWordHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.NewWord(ctx)
		return app.boardData(v), err
	})
}

func (app *App) resumeHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.Resume(ctx)
		return app.boardData(v), err
	})
}

func (app *App) saveHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.Save(ctx)
		return app.boardData(v), err
	})
}

func (app *App) loadHandler(c *gin.Context) {
	app.respond(c, func(ctx context.Context) (BoardData, error) {
		v, err := app.Game.Load(ctx)
		return app.boardData(v), err
	})
}

// respond runs an action and renders the board as an htmx fragment, JSON,
// or a redirect back home for plain form posts.
func (app *App) respond(c *gin.Context, action func(context.Context) (BoardData, error)) {
	board, err := action(c.Request.Context())
	if err != nil {
		app.unavailable(c, err)
		return
	}

	switch {
	case c.GetHeader("HX-Request") == "true":
		c.HTML(http.StatusOK, templateBoard, board)
	case wantsJSON(c):
		c.JSON(http.StatusOK, board)
	case c.Request.Method == http.MethodGet:
		c.HTML(http.StatusOK, templateBoard, board)
	default:
		c.Redirect(http.StatusSeeOther, RouteHome)
	}
}

func (app *App) unavailable(c *gin.Context, err error) {
	logger := requestLogger(c)
	logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("game action failed")
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": ErrorGameUnavailable})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	status := "ok"
	select {
	case <-app.Game.Done():
		status = "stopped"
	default:
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"env":          envName(app.IsProduction),
		"words_loaded": app.VocabularySize,
		"save_file":    app.SavePath,
		"uptime":       formatUptime(uptime),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// normalizeGuess trims surrounding whitespace from a guess.
func normalizeGuess(input string) string {
	return strings.TrimSpace(input)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
