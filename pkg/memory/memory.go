// Package memory implements the per-session narrative memory: a bounded
// buffer of recent turns plus a periodically re-summarized long-term
// digest, both fed back into narration context.
package memory

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Defaults applied when a Manager is created without explicit limits.
const (
	DefaultShortLimit   = 5
	DefaultMaxLongChars = 1200
)

// TurnText is one turn's player and GM text, as remembered short-term.
type TurnText struct {
	Player string `json:"player"`
	GM     string `json:"gm"`
}

// SummarizeFunc condenses the previous summary plus new narration texts
// into an updated summary. An empty result means "no update".
type SummarizeFunc func(ctx context.Context, previous string, texts []string) (string, error)

// Manager holds one session's memory. Fields are exported so the session
// store can persist a Manager alongside its game state; callers mutate it
// only through methods, under the session lock.
type Manager struct {
	ShortLimit   int        `json:"short_limit"`
	MaxLongChars int        `json:"max_long_chars"`
	Short        []TurnText `json:"short_texts"`
	Pending      []string   `json:"pending_texts"`
	LongSummary  string     `json:"long_summary"`
}

// NewManager creates a Manager with the given limits; non-positive limits
// fall back to the defaults.
func NewManager(shortLimit, maxLongChars int) *Manager {
	if shortLimit <= 0 {
		shortLimit = DefaultShortLimit
	}
	if maxLongChars <= 0 {
		maxLongChars = DefaultMaxLongChars
	}
	return &Manager{
		ShortLimit:   shortLimit,
		MaxLongChars: maxLongChars,
		Short:        make([]TurnText, 0, shortLimit),
	}
}

// AddTurn appends a turn to the short-term buffer, evicting the oldest
// entry beyond the limit, and queues the GM text for summarization.
// A turn with neither text is ignored.
func (m *Manager) AddTurn(playerText, gmText string) {
	playerText = strings.TrimSpace(playerText)
	gmText = strings.TrimSpace(gmText)
	if playerText == "" && gmText == "" {
		return
	}
	m.Short = append(m.Short, TurnText{Player: playerText, GM: gmText})
	if len(m.Short) > m.ShortLimit {
		m.Short = m.Short[1:]
	}
	if gmText != "" {
		m.Pending = append(m.Pending, gmText)
	}
}

// UpdateLongSummary re-summarizes pending narration into the long-term
// digest. It is a no-op when nothing is pending and a summary already
// exists. Pending texts are cleared only after a successful, non-empty
// summarization, so a failed attempt retries with the same input.
func (m *Manager) UpdateLongSummary(ctx context.Context, summarize SummarizeFunc) error {
	if len(m.Pending) == 0 && m.LongSummary != "" {
		return nil
	}
	summary, err := summarize(ctx, m.LongSummary, m.Pending)
	if err != nil {
		return err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}
	m.LongSummary = trimSummary(summary, m.MaxLongChars)
	m.Pending = nil
	return nil
}

// ShortTexts returns a copy of the short-term buffer, oldest first.
func (m *Manager) ShortTexts() []TurnText {
	out := make([]TurnText, len(m.Short))
	copy(out, m.Short)
	return out
}

// trimSummary caps a summary at maxChars characters (runes, so a cut
// never splits a multi-byte character), cutting at the last sentence
// boundary within the cap. A boundary inside the first 50 characters is
// ignored so trimming never leaves a useless fragment.
func trimSummary(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	cut := string(runes[:maxChars])
	if dot := strings.LastIndex(cut, "."); dot >= 0 && utf8.RuneCountInString(cut[:dot]) >= 50 {
		return cut[:dot+1]
	}
	return cut
}
