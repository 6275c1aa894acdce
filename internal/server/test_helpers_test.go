package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msuss/codenames/internal/agent"
	"github.com/msuss/codenames/internal/game"
)

// setTestPool pins the word pool to 25 synthetic words so flow tests can
// give clues that never collide with the board.
func setTestPool(t *testing.T) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&b, "CARD%02d\n", i)
	}
	path := filepath.Join(t.TempDir(), "pool.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write pool file: %v", err)
	}
	t.Setenv("WORD_POOL_FILE", path)
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func createGame(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["game_id"].(string)
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, gameID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

// wordsByType reads card types through the spymaster view so flow tests can
// steer guesses deterministically.
func wordsByType(t *testing.T, ts *httptest.Server, gameID string) map[string][]string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"?view=spymaster", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	out := map[string][]string{}
	for _, raw := range body["cards"].([]any) {
		card := raw.(map[string]any)
		cardType := card["type"].(string)
		out[cardType] = append(out[cardType], card["word"].(string))
	}
	return out
}

func giveClue(t *testing.T, ts *httptest.Server, gameID, word string, number int) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/clues", map[string]any{
		"word":   word,
		"number": number,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func guessWord(t *testing.T, ts *httptest.Server, gameID, word string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/guesses", map[string]any{
		"word": word,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// scriptedFactory hands out canned agents so agent-move tests never touch a
// real model.
type scriptedFactory struct {
	clue ClueScript
	plan PlanScript
}

type ClueScript struct {
	Move agent.ClueMove
	Err  error
}

type PlanScript struct {
	Plan agent.GuessPlan
	Err  error
}

func (f *scriptedFactory) Spymaster(team game.Team, model string) agent.Spymaster {
	return scriptedSpymaster{script: f.clue}
}

func (f *scriptedFactory) Guesser(team game.Team, model string) agent.Guesser {
	return scriptedGuesser{script: f.plan}
}

type scriptedSpymaster struct {
	script ClueScript
}

func (a scriptedSpymaster) ProposeClue(ctx context.Context, g *game.Game) (agent.ClueMove, error) {
	return a.script.Move, a.script.Err
}

type scriptedGuesser struct {
	script PlanScript
}

func (a scriptedGuesser) PlanGuesses(ctx context.Context, g *game.Game) (agent.GuessPlan, error) {
	return a.script.Plan, a.script.Err
}
