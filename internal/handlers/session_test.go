package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhollow/adventure/internal/session"
	"github.com/emberhollow/adventure/pkg/state"
)

func TestSessionHandler_Get(t *testing.T) {
	store := session.NewMemoryStore(session.Limits{})
	sess, err := store.GetOrCreate(context.Background(), "abc")
	require.NoError(t, err)
	sess.State.Turn = 3
	sess.State.World.Location = state.LocationCave

	handler := NewSessionHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/session/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got state.GameState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Turn)
	assert.Equal(t, state.LocationCave, got.World.Location)
}

func TestSessionHandler_GetNotFound(t *testing.T) {
	handler := NewSessionHandler(session.NewMemoryStore(session.Limits{}), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/session/nope", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Session not found.", errResp.Error)
}

func TestSessionHandler_MissingID(t *testing.T) {
	handler := NewSessionHandler(session.NewMemoryStore(session.Limits{}), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/session/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_Delete(t *testing.T) {
	store := session.NewMemoryStore(session.Limits{})
	_, err := store.GetOrCreate(context.Background(), "abc")
	require.NoError(t, err)

	handler := NewSessionHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/v1/session/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	sess, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionHandler_GetWaitsForSessionLock(t *testing.T) {
	store := session.NewMemoryStore(session.Limits{})
	_, err := store.GetOrCreate(context.Background(), "abc")
	require.NoError(t, err)

	handler := NewSessionHandler(store, testLogger())

	// Hold the session lock as an in-flight turn would; the read must
	// wait for it rather than snapshot mid-mutation.
	unlock := store.Lock("abc")
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/session/abc", nil))
		done <- w
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("GET completed while the session lock was held")
	default:
	}

	unlock()
	w := <-done
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSessionHandler(session.NewMemoryStore(session.Limits{}), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/session/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
