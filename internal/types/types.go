package types

// WordEntry is one vocabulary item as stored in words.json.
type WordEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint,omitempty"`
}

type WordList struct {
	Words []WordEntry `json:"words"`
}

// Snapshot is the persisted projection of a game session.
type Snapshot struct {
	Score         int    `json:"score"`
	TimeRemaining int    `json:"time_left"`
	CurrentWord   string `json:"current_word"`
	ScrambledForm string `json:"scrambled"`
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-facing message raised by a game transition.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
