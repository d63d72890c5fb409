package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhollow/adventure/pkg/turn"
)

// stubProcessor implements TurnProcessor with a canned response.
type stubProcessor struct {
	resp    *turn.Response
	err     error
	lastReq turn.Request
	called  bool
}

func (s *stubProcessor) ProcessTurn(_ context.Context, req turn.Request) (*turn.Response, error) {
	s.called = true
	s.lastReq = req
	return s.resp, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTurnHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		processor      *stubProcessor
		expectedStatus int
		expectedError  string
		expectCalled   bool
	}{
		{
			name:   "successful turn",
			method: http.MethodPost,
			body:   `{"session_id": "abc", "text": "look around"}`,
			processor: &stubProcessor{resp: &turn.Response{
				SessionID: "abc",
				Narration: "A quiet village square.",
				Choices:   []string{"Go to cave"},
			}},
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			body:           "",
			processor:      &stubProcessor{},
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "Method not allowed. Only POST is supported.",
		},
		{
			name:           "invalid JSON",
			method:         http.MethodPost,
			body:           `{"session_id": `,
			processor:      &stubProcessor{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body. Expected JSON with 'session_id' and 'text' fields.",
		},
		{
			name:           "empty text",
			method:         http.MethodPost,
			body:           `{"session_id": "abc", "text": "   "}`,
			processor:      &stubProcessor{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request: text cannot be empty",
		},
		{
			name:           "engine failure",
			method:         http.MethodPost,
			body:           `{"text": "look"}`,
			processor:      &stubProcessor{err: errors.New("provider down")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to process turn. Please try again.",
			expectCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTurnHandler(tt.processor, testLogger())

			req := httptest.NewRequest(tt.method, "/v1/turn", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectCalled, tt.processor.called)

			if tt.expectedError != "" {
				var errResp ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedError, errResp.Error)
				return
			}

			var resp turn.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "abc", resp.SessionID)
			assert.Equal(t, "A quiet village square.", resp.Narration)
		})
	}
}

func TestTurnHandler_PassesRequestThrough(t *testing.T) {
	processor := &stubProcessor{resp: &turn.Response{SessionID: "abc"}}
	handler := NewTurnHandler(processor, testLogger())

	body := `{"session_id": "abc", "text": "go north"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/turn", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", processor.lastReq.SessionID)
	assert.Equal(t, "go north", processor.lastReq.Text)
}
