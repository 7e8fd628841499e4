package main

import "time"

// Route constants
const (
	RouteHome    = "/"
	RouteState   = "/state"
	RouteStart   = "/start"
	RouteGuess   = "/guess"
	RouteHint    = "/hint"
	RouteNewWord = "/new-word"
	RouteResume  = "/resume"
	RouteSave    = "/save"
	RouteLoad    = "/load"
	RouteHealthz = "/healthz"
	RouteStatic  = "/static"
)

// Display text constants
const (
	PageTitle     = "Scrambled Word Game"
	IdleWordLabel = "Click Start!"
)

// Template names
const (
	templateIndex = "index.html"
	templateBoard = "board"
)

// Background colour cycle
const BackdropInterval = 1500 * time.Millisecond

var BackdropColors = []string{"#FFB6C1", "#FFC9DE", "#FFDDF0", "#FFEAF9"}

// Error message constants
const (
	ErrorGameUnavailable = "The game is not available right now."
	ErrorTooManyRequests = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
