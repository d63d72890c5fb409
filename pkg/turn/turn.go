// Package turn defines the wire types of the turn endpoint.
package turn

import (
	"fmt"
	"strings"

	"github.com/emberhollow/adventure/pkg/state"
)

// Request is one player turn submitted to the API. An empty SessionID
// asks the server to mint a fresh session.
type Request struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// Validate checks the request for the fields the engine requires.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// Response is the resolved turn: narration, suggested choices, the
// end-of-game flag and a full snapshot of the session state.
type Response struct {
	SessionID string           `json:"session_id"`
	Narration string           `json:"narration"`
	Choices   []string         `json:"choices"`
	EndGame   bool             `json:"end_game"`
	State     *state.GameState `json:"state"`
}
