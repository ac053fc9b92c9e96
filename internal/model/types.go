// Package model defines shared data structures.
package model

// Config defines test settings after flags and the config file are merged.
type Config struct {
	TimeLimit int    `validate:"gte=1,lte=3600"`
	WordsFile string `validate:"omitempty,filepath"`
	Sample    int    `validate:"gte=0"`
	Seed      int64
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFile   string
	JSON      bool
}

// ScoreResult is the outcome of one finished attempt.
type ScoreResult struct {
	SessionID string       `json:"session_id,omitempty"`
	TimeLimit int          `json:"time_limit"`
	Correct   int          `json:"correct_chars"`
	CPM       int          `json:"cpm"`
	WPM       int          `json:"wpm"`
	Words     []WordResult `json:"words,omitempty"`
	Timeline  []float64    `json:"timeline,omitempty"`
}

// WordResult compares one typed word against the word at the same index.
// Expected is empty when more words were typed than generated.
type WordResult struct {
	Index    int    `json:"index"`
	Expected string `json:"expected"`
	Typed    string `json:"typed"`
	Match    bool   `json:"match"`
	Chars    int    `json:"chars"`
}
