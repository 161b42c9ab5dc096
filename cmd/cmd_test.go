package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/notation"
	"github.com/suderio/jdice/internal/session"
	"github.com/suderio/jdice/internal/telegram"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunRoll(t *testing.T) {
	var out bytes.Buffer
	err := runRoll(&out, "3d6+4 ; 1d4", "", nil, dice.NewQueueSource(3, 5, 2, 1))
	require.NoError(t, err)

	assert.Equal(t, "3d6+4  =>  [3 5 2] +4 = 14\n1d4  =>  [1] = 1\nTotal for this roll: 15\n", out.String())
}

func TestRunRollNamedWithCheck(t *testing.T) {
	var out bytes.Buffer
	err := runRoll(&out, "attack=1d20+5", "total >= 15", nil, dice.NewQueueSource(12))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "attack\n")
	assert.Contains(t, out.String(), "Check total >= 15 (total 17): PASSED")
}

func TestRunRollPreset(t *testing.T) {
	path := writeFile(t, "party.txt", "fireball=8d6\n")

	var out bytes.Buffer
	err := runRoll(&out, "Fireball", "", []string{path}, dice.NewQueueSource(1, 1, 1, 1, 1, 1, 1, 1))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "fireball\n")
	assert.Contains(t, out.String(), "= 8")
}

func TestRunRollInvalid(t *testing.T) {
	err := runRoll(io.Discard, "4d6 + xyzzy", "", nil, dice.NewSource(1))
	assert.ErrorIs(t, err, notation.ErrInvalidSyntax)
}

func TestRunBatch(t *testing.T) {
	path := writeFile(t, "rolls.txt", "# warm up\n1d6\n\nhit=1d8+2\n")

	var out bytes.Buffer
	err := runBatch(&out, io.Discard, path, 2, dice.NewQueueSource(1, 2, 3, 4))
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "1d6  =>  [1] = 1")
	assert.Contains(t, s, "hit\n  1d8+2  =>  [2] +2 = 4")
	assert.Contains(t, s, "Cumulative Total: 14\n")
}

func TestRunBatchErrors(t *testing.T) {
	bad := writeFile(t, "bad.txt", "1d6\n2q8\n")
	err := runBatch(io.Discard, io.Discard, bad, 1, dice.NewSource(1))
	assert.ErrorContains(t, err, "bad.txt:2")

	good := writeFile(t, "good.txt", "1d6\n")
	err = runBatch(io.Discard, io.Discard, good, 0, dice.NewSource(1))
	assert.Error(t, err)

	err = runBatch(io.Discard, io.Discard, filepath.Join(t.TempDir(), "missing.txt"), 1, dice.NewSource(1))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompletions(t *testing.T) {
	app, err := session.NewSession(nil, dice.NewSource(1))
	require.NoError(t, err)
	m := newREPLModel(app)

	assert.Nil(t, m.completions(""))
	assert.Equal(t, []string{"preset ", "presets"}, m.completions("Pre"))
	assert.Empty(t, m.completions("presets"))
	assert.Equal(t, []string{"preset d10", "preset d12", "preset d100"}, m.completions("preset d1"))
}

func TestSubmit(t *testing.T) {
	app, err := session.NewSession(nil, dice.NewQueueSource(4))
	require.NoError(t, err)
	m := newREPLModel(app)

	m.submit("d6")
	assert.Contains(t, m.logContent, "> d6\n1d6  =>  [4] = 4")
	assert.Contains(t, m.renderState(), "Cumulative Total: 4")

	m.submit("fly away")
	assert.Contains(t, m.logContent, "Error: I wasn't able to understand your command")
}

func TestWriteVersion(t *testing.T) {
	var out bytes.Buffer
	writeVersion(&out, true)
	assert.Equal(t, "dev\n", out.String())

	out.Reset()
	writeVersion(&out, false)
	assert.Contains(t, out.String(), "jdice version dev")
}

func TestHistoryRecall(t *testing.T) {
	app, err := session.NewSession(nil, dice.NewSource(1))
	require.NoError(t, err)
	m := newREPLModel(app)

	m.remember("d6")
	m.remember("d6")
	m.remember("total")
	assert.Equal(t, []string{"d6", "total"}, m.history)

	m.recall(-1)
	assert.Equal(t, "total", m.textInput.Value())
	m.recall(-1)
	m.recall(-1)
	assert.Equal(t, "d6", m.textInput.Value())
	m.recall(1)
	assert.Equal(t, "total", m.textInput.Value())
	m.recall(1)
	assert.Empty(t, m.textInput.Value())
	assert.Equal(t, -1, m.historyIdx)
}

func TestStartBotSavesLastUpdateOnStop(t *testing.T) {
	var (
		mu      sync.Mutex
		pending = []telegram.Update{{UpdateID: 9, Message: &telegram.Message{Chat: telegram.Chat{ID: 5}, Text: "/roll d6"}}}
		sent    []string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/bottok/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		updates := pending
		pending = nil
		mu.Unlock()
		raw, _ := json.Marshal(updates)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": json.RawMessage(raw)})
	})
	mux.HandleFunc("/bottok/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		sent = append(sent, body.Text)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := telegram.NewClient("tok")
	client.APIBase = srv.URL
	client.HTTPClient = srv.Client()

	app, err := session.NewSession(nil, dice.NewQueueSource(4))
	require.NoError(t, err)

	viper.Set("tg_last_update_id", 0)
	defer viper.Set("tg_last_update_id", nil)

	stop := startBot(client, 5, app)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, 2*time.Second, 10*time.Millisecond)
	stop()

	assert.Equal(t, 9, viper.GetInt("tg_last_update_id"))
	assert.Equal(t, 1, app.State().Rolls)
	assert.Contains(t, sent[0], "1d6  =>  [4] = 4")
}
