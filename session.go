package main

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"wordscramble/internal/game"
)

// boardData projects a session view into template data.
func (app *App) boardData(v game.View) BoardData {
	return BoardData{
		State:                 v.State.String(),
		Running:               v.Running(),
		CanResume:             !v.Running() && v.Scrambled != "" && v.TimeRemaining > 0,
		Score:                 v.Score,
		TimeRemaining:         v.TimeRemaining,
		HintsUsed:             v.HintsUsed,
		Word:                  lo.Ternary(v.Scrambled != "", v.Scrambled, IdleWordLabel),
		Definition:            v.Definition,
		DefinitionPlaceholder: v.Definition == game.DefinitionPlaceholder,
		Notice:                v.Notice,
		Background:            app.Backdrop.Current(),
	}
}

// pageData builds the full page context around a board.
func (app *App) pageData(c *gin.Context, board BoardData) gin.H {
	return gin.H{
		"title":      PageTitle,
		"board":      board,
		"request_id": requestID(c),
	}
}
