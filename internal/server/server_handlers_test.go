package server

import (
	"net/http"
	"testing"

	"github.com/msuss/codenames/internal/config"
)

func TestCreateGameRejectsBadBoardSize(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"board_size": 30,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCreateGameCustomSetup(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"board_size": 36,
		"llm_model":  "gpt-4o-mini",
		"players": map[string]string{
			"RED_SPYMASTER": "agent",
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	gameID := decodeBody(t, resp)["game_id"].(string)

	snap := fetchSnapshot(t, ts, gameID)
	if len(snap["cards"].([]any)) != 36 {
		t.Fatalf("expected 36 cards, got %d", len(snap["cards"].([]any)))
	}
	if snap["llm_model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", snap["llm_model"])
	}
	players := snap["players"].(map[string]any)
	if players["RED_SPYMASTER"] != "agent" || players["BLUE_SPYMASTER"] != "human" {
		t.Fatalf("unexpected players: %v", players)
	}
}

func TestSnapshotHidesUnrevealedTypes(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts)
	snap := fetchSnapshot(t, ts, gameID)
	for _, raw := range snap["cards"].([]any) {
		card := raw.(map[string]any)
		if card["type"] != nil {
			t.Fatalf("guesser view leaked type for %v", card["word"])
		}
		if card["revealed"].(bool) {
			t.Fatalf("fresh board has revealed card %v", card["word"])
		}
	}

	byType := wordsByType(t, ts, gameID)
	total := 0
	for _, words := range byType {
		total += len(words)
	}
	if total != 25 {
		t.Fatalf("spymaster view should type every card, got %d", total)
	}
}

func TestClueValidation(t *testing.T) {
	setTestPool(t)
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts)
	cases := []map[string]any{
		{"word": "", "number": 1},
		{"word": "TWO WORDS", "number": 1},
		{"word": "FRUIT", "number": -1},
		{"word": "FRUIT", "number": 26},
		{"word": "CARD01", "number": 1}, // board word
	}
	for _, payload := range cases {
		resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/clues", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %v: expected status %d, got %d", payload, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestGuessBeforeClueRejected(t *testing.T) {
	setTestPool(t)
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts)
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/guesses", map[string]any{
		"word": "CARD01",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestGuessCaseInsensitive(t *testing.T) {
	setTestPool(t)
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts)
	giveClue(t, ts, gameID, "FRUIT", 1)
	state := guessWord(t, ts, gameID, "card01")
	revealed := false
	for _, raw := range state["cards"].([]any) {
		card := raw.(map[string]any)
		if card["word"] == "CARD01" && card["revealed"].(bool) {
			revealed = true
		}
	}
	if !revealed {
		t.Fatalf("lowercase guess should reveal the board word")
	}
}

func TestUnknownGameIs404(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/games/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodPost, "/api/games/nope/clues", map[string]any{
		"word":   "FRUIT",
		"number": 1,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestAccessTokenGuardsCreation(t *testing.T) {
	cfg := config.Default()
	cfg.AccessToken = "sesame"
	srv := New(nil, cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/games", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/games", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Access-Token", "sesame")
	authed, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = authed.Body.Close() })
	if authed.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, authed.StatusCode)
	}

	gameID := decodeBody(t, authed)["game_id"].(string)
	snap := fetchSnapshot(t, ts, gameID)
	if snap["id"] != gameID {
		t.Fatalf("reads should not require the token")
	}
}

func TestHistoryWithoutDatabase(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/history", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if games, ok := body["games"].([]any); !ok || len(games) != 0 {
		t.Fatalf("expected empty history list, got %v", body)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/history/abc", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}

	gameID := createGame(t, ts)
	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/events", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}
