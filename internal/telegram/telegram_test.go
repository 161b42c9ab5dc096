package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 10 * time.Millisecond
)

type fakeAPI struct {
	mu      sync.Mutex
	offsets []string
	sent    []map[string]interface{}
	updates []Update
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bottok/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.offsets = append(f.offsets, r.URL.Query().Get("offset"))
		updates := f.updates
		f.updates = nil
		f.mu.Unlock()

		raw, _ := json.Marshal(updates)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": json.RawMessage(raw)})
	})
	mux.HandleFunc("/bottok/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.sent = append(f.sent, body)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})
	mux.HandleFunc("/botbad/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	})
	return mux
}

func newTestClient(t *testing.T, token string, api *fakeAPI) *Client {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	c := NewClient(token)
	c.APIBase = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

type fakeExecutor struct {
	inputs []string
	lines  []string
	err    error
}

func (f *fakeExecutor) Execute(input string) ([]string, error) {
	f.inputs = append(f.inputs, input)
	return f.lines, f.err
}

func TestClientGetUpdates(t *testing.T) {
	api := &fakeAPI{updates: []Update{{UpdateID: 7, Message: &Message{Text: "/roll 2d6", Chat: Chat{ID: 1}}}}}
	c := newTestClient(t, "tok", api)

	updates, err := c.GetUpdates(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 7, updates[0].UpdateID)
	assert.Equal(t, "/roll 2d6", updates[0].Message.Text)
	assert.Equal(t, []string{"5"}, api.offsets)
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t, "bad", &fakeAPI{})

	_, err := c.GetUpdates(context.Background(), 0, 0)
	assert.ErrorContains(t, err, "Unauthorized")
}

func TestClientSendMessage(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, "tok", api)

	require.NoError(t, c.SendMessage(context.Background(), 42, "hello"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, float64(42), api.sent[0]["chat_id"])
	assert.Equal(t, "hello", api.sent[0]["text"])
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"/roll 2d6+1", "roll 2d6+1", true},
		{"/Roll@jdice_bot 1d20", "roll 1d20", true},
		{"/total", "total", true},
		{"/clear", "clear", true},
		{"roll 2d6", "", false},
		{"/", "", false},
		{"/start", "", false},
	}
	for _, tt := range tests {
		got, ok := translate(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestHandleMessage(t *testing.T) {
	api := &fakeAPI{}
	exec := &fakeExecutor{lines: []string{"2d6  =>  [3 4] = 7"}}
	bot := NewBot(newTestClient(t, "tok", api), 10, 0, exec)
	ctx := context.Background()

	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 99}, Text: "/roll 2d6"})
	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 10}, Text: "just chatting"})
	assert.Empty(t, exec.inputs)

	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 10}, From: User{Username: "gm"}, Text: "/roll 2d6"})
	assert.Equal(t, []string{"roll 2d6"}, exec.inputs)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "@gm\n2d6  =>  [3 4] = 7", api.sent[0]["text"])

	exec.err = errors.New("invalid dice string")
	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 10}, From: User{FirstName: "Ana"}, Text: "/roll zz"})
	require.Len(t, api.sent, 2)
	assert.Equal(t, "Ana: invalid dice string", api.sent[1]["text"])
}

func TestStartStopsOnCancel(t *testing.T) {
	api := &fakeAPI{updates: []Update{{UpdateID: 3, Message: &Message{Chat: Chat{ID: 10}, Text: "/total"}}}}
	exec := &fakeExecutor{lines: []string{"Cumulative Total: 0"}}
	bot := NewBot(newTestClient(t, "tok", api), 10, 2, exec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bot.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.sent) == 1 && len(api.offsets) >= 2
	}, testTimeout, testTick)
	cancel()
	<-done

	assert.Equal(t, 3, bot.LastUpdateID())
	api.mu.Lock()
	assert.Equal(t, "3", api.offsets[0])
	assert.Equal(t, "4", api.offsets[1])
	api.mu.Unlock()
}
