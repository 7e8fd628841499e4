package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"wordscramble/internal/game"
	"wordscramble/internal/types"
)

// Config holds the host settings read from the environment.
type Config struct {
	BindAddr          string
	Port              string
	IsProduction      bool
	LogLevel          string
	WordsFile         string
	SaveFile          string
	DictionaryURL     string
	DictionaryTimeout time.Duration
	RateLimitRPS      int
	RateLimitBurst    int
	StaticCacheAge    time.Duration
}

// App wires the game controller to the web presentation.
type App struct {
	Game           *game.Controller
	Backdrop       *Backdrop
	Assets         *AssetBundle
	IsProduction   bool
	StartTime      time.Time
	VocabularySize int
	SavePath       string
	RateLimitRPS   int
	RateLimitBurst int
	StaticCacheAge time.Duration
	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex
}

// BoardData is what the board template and JSON clients receive.
type BoardData struct {
	State                 string              `json:"state"`
	Running               bool                `json:"running"`
	CanResume             bool                `json:"canResume"`
	Score                 int                 `json:"score"`
	TimeRemaining         int                 `json:"timeRemaining"`
	HintsUsed             int                 `json:"hintsUsed"`
	Word                  string              `json:"word"`
	Definition            string              `json:"definition"`
	DefinitionPlaceholder bool                `json:"definitionPlaceholder"`
	Notice                *types.Notification `json:"notice,omitempty"`
	Hint                  string              `json:"hint,omitempty"`
	Background            string              `json:"background"`
}
