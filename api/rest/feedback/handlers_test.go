package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ai/server/atelier/feedbackevents"
	"github.com/atelier-ai/server/atelier/generations"
	fb "github.com/atelier-ai/server/internal/feedback"
	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/tokenscore"
)

type fakeRecords struct {
	record *generations.Record
}

func (f *fakeRecords) Get(_ context.Context, id, userID string) (*generations.Record, error) {
	if f.record != nil && f.record.ID == id && f.record.UserID == userID {
		return f.record, nil
	}

	return nil, generations.ErrRecordNotFound
}

func (f *fakeRecords) List(context.Context, string, int, int) ([]generations.Record, error) {
	return nil, nil
}

// in-memory EventStore tracking the dedup key like the real table does
type fakeEvents struct {
	keys    map[string]bool // generationID + "/" + feedbackType
	deletes int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{keys: make(map[string]bool)}
}

func (f *fakeEvents) Insert(_ context.Context, e *feedbackevents.Event) (bool, error) {
	key := e.GenerationID + "/" + e.FeedbackType
	if f.keys[key] {
		return false, nil
	}

	f.keys[key] = true

	return true, nil
}

func (f *fakeEvents) Delete(_ context.Context, generationID, feedbackType string) error {
	delete(f.keys, generationID+"/"+feedbackType)
	f.deletes++

	return nil
}

func (f *fakeEvents) ListByGeneration(context.Context, string) ([]feedbackevents.Event, error) {
	return nil, nil
}

// score store that fails a configurable number of Apply calls before
// recovering
type flakyScores struct {
	inner    tokenscore.Store
	failures int
}

func (f *flakyScores) Scores(ctx context.Context, userID string) ([]tokenscore.Score, error) {
	return f.inner.Scores(ctx, userID)
}

func (f *flakyScores) Apply(ctx context.Context, userID, token string, reward, multiplier float64) (tokenscore.Score, error) {
	if f.failures > 0 {
		f.failures--
		return tokenscore.Score{}, errors.New("score backend unavailable")
	}

	return f.inner.Apply(ctx, userID, token, reward, multiplier)
}

func (f *flakyScores) Close() error { return f.inner.Close() }

func submit(t *testing.T, handler gin.HandlerFunc, body Request) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/feedback", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "user-1")

	handler(c)

	return w
}

func testRecord() *generations.Record {
	return &generations.Record{
		ID:     "11111111-1111-1111-1111-111111111111",
		UserID: "user-1",
		Segments: promptgen.Segments{
			Core:    []string{"professional fashion photography"},
			Learned: []string{"liquid silk charmeuse"},
		},
	}
}

func TestHandler_ScoringFailureReleasesDedupKeyForRetry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	records := &fakeRecords{record: testRecord()}
	events := newFakeEvents()
	scores := &flakyScores{inner: tokenscore.NewMemoryStore(), failures: 1}
	handler := Handler(records, events, fb.NewProcessor(scores))

	req := Request{GenerationID: testRecord().ID, FeedbackType: "save"}

	// first submission: event inserted, score application fails
	w := submit(t, handler, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, events.deletes, "the dedup key must be released on scoring failure")

	// retry: must run the full pass, not the duplicate branch
	w = submit(t, handler, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.False(t, resp.Duplicate, "a retry after a failed pass is not a duplicate")
	require.Len(t, resp.Deltas, 1)
	assert.InDelta(t, 0.55, resp.Deltas[0].NewScore, 1e-9)

	// the reward must actually be in the store now
	stored, err := scores.Scores(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].ObservationCount, "exactly one update pass per event")
}

func TestHandler_DuplicateSubmissionDoesNotRescore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	records := &fakeRecords{record: testRecord()}
	events := newFakeEvents()
	scores := tokenscore.NewMemoryStore()
	handler := Handler(records, events, fb.NewProcessor(scores))

	req := Request{GenerationID: testRecord().ID, FeedbackType: "save"}

	w := submit(t, handler, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = submit(t, handler, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Duplicate)

	stored, err := scores.Scores(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].ObservationCount, "a duplicate must not re-apply the reward")
}

func TestHandler_UnknownGenerationAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := Handler(&fakeRecords{}, newFakeEvents(), fb.NewProcessor(tokenscore.NewMemoryStore()))

	w := submit(t, handler, Request{
		GenerationID: "22222222-2222-2222-2222-222222222222",
		FeedbackType: "save",
	})

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
}
