package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"draw-guess/internal/config"
	"draw-guess/internal/game"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code int             `json:"code"`
	Hint string          `json:"hint"`
	Data json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T, words ...string) http.Handler {
	t.Helper()
	store := game.NewMemStore()
	for _, w := range words {
		if err := store.AddWord(context.Background(), "en", w); err != nil {
			t.Fatalf("seeding word %q: %v", w, err)
		}
	}
	cfg := config.Default()
	cfg.JWTSecret = "test-secret"
	svc := game.New(store, game.NewLocker(cfg.LockRetries, time.Millisecond), cfg)
	return New(svc, store, cfg).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return env
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decoding data %q: %v", env.Data, err)
	}
	return data
}

func gameView(t *testing.T, h http.Handler, code, user, token string) map[string]any {
	t.Helper()
	env := decode(t, doRequest(t, h, "GET", "/api/games/"+code+"?user="+user, token, nil))
	if env.Code != 0 {
		t.Fatalf("view for %s: code %d hint %q", user, env.Code, env.Hint)
	}
	return dataMap(t, env)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, "GET", "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateGameValidation(t *testing.T) {
	h := newTestHandler(t, "apple")
	rec := doRequest(t, h, "POST", "/api/games", "", map[string]any{"lang": "en"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestGetGameRequiresUser(t *testing.T) {
	h := newTestHandler(t, "apple")
	rec := doRequest(t, h, "GET", "/api/games/abcd", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestJoinUnknownGame(t *testing.T) {
	h := newTestHandler(t, "apple")
	env := decode(t, doRequest(t, h, "POST", "/api/games/zzzz/join", "", map[string]any{"user": "bob"}))
	if env.Code != -1 {
		t.Fatalf("code = %d, want -1", env.Code)
	}
}

func TestJoinDuplicateName(t *testing.T) {
	h := newTestHandler(t, "apple", "banana")
	env := decode(t, doRequest(t, h, "POST", "/api/games", "", map[string]any{"user": "alice", "lang": "en", "score": 25}))
	code := dataMap(t, env)["code"].(string)
	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/join", "", map[string]any{"user": "alice"}))
	if env.Code != -4 {
		t.Fatalf("code = %d, want -4", env.Code)
	}
}

func TestMutationsRequireMatchingToken(t *testing.T) {
	h := newTestHandler(t, "apple", "banana")
	env := decode(t, doRequest(t, h, "POST", "/api/games", "", map[string]any{"user": "alice", "lang": "en", "score": 25}))
	created := dataMap(t, env)
	code := created["code"].(string)

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/start", "", map[string]any{"user": "alice"}))
	if env.Code != -100 {
		t.Fatalf("missing token: code = %d, want -100", env.Code)
	}

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/join", "", map[string]any{"user": "bob"}))
	bobToken := dataMap(t, env)["token"].(string)
	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/start", bobToken, map[string]any{"user": "alice"}))
	if env.Code != -100 {
		t.Fatalf("borrowed token: code = %d, want -100", env.Code)
	}
}

func TestFullGameFlow(t *testing.T) {
	h := newTestHandler(t, "apple", "banana", "cherry")

	env := decode(t, doRequest(t, h, "POST", "/api/games", "", map[string]any{"user": "alice", "lang": "en", "score": 25}))
	if env.Code != 0 {
		t.Fatalf("create: code %d hint %q", env.Code, env.Hint)
	}
	created := dataMap(t, env)
	code := created["code"].(string)
	tokens := map[string]string{"alice": created["token"].(string)}

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/join", "", map[string]any{"user": "bob"}))
	if env.Code != 0 {
		t.Fatalf("join: code %d hint %q", env.Code, env.Hint)
	}
	tokens["bob"] = dataMap(t, env)["token"].(string)

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/start", tokens["alice"], map[string]any{"user": "alice"}))
	if env.Code != 0 {
		t.Fatalf("start: code %d hint %q", env.Code, env.Hint)
	}
	if state := gameView(t, h, code, "alice", tokens["alice"])["state"]; state != "waiting_for_initial_pic" {
		t.Fatalf("state after start = %v", state)
	}

	for _, name := range []string{"alice", "bob"} {
		env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/savepic", tokens[name], map[string]any{"user": name, "pic": "pic-" + name}))
		if env.Code != 0 {
			t.Fatalf("savepic %s: code %d hint %q", name, env.Code, env.Hint)
		}
	}

	aliceView := gameView(t, h, code, "alice", tokens["alice"])
	if aliceView["state"] != "action_name" {
		t.Fatalf("state after drawings = %v", aliceView["state"])
	}
	turn, guesser := "alice", "bob"
	if aliceView["my_turn"] != true {
		turn, guesser = "bob", "alice"
	}
	word := gameView(t, h, code, turn, tokens[turn])["word"].(string)

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/pickWord", tokens[guesser], map[string]any{"user": guesser, "word": "zebra"}))
	if env.Code != 0 {
		t.Fatalf("pickWord: code %d hint %q", env.Code, env.Hint)
	}

	guesserView := gameView(t, h, code, guesser, tokens[guesser])
	if guesserView["state"] != "action_choose" {
		t.Fatalf("state after caption = %v", guesserView["state"])
	}
	captions := guesserView["captions"].([]any)
	if len(captions) != 2 {
		t.Fatalf("captions = %v, want decoy plus word", captions)
	}

	env = decode(t, doRequest(t, h, "POST", "/api/games/"+code+"/guessWord", tokens[guesser], map[string]any{"user": guesser, "word": word}))
	if env.Code != 0 {
		t.Fatalf("guessWord: code %d hint %q", env.Code, env.Hint)
	}

	scoresView := gameView(t, h, code, turn, tokens[turn])
	if scoresView["state"] != "action_scores" {
		t.Fatalf("state after guess = %v", scoresView["state"])
	}
	if scoresView["turn_word"] != word {
		t.Fatalf("turn_word = %v, want %q", scoresView["turn_word"], word)
	}
	if scoresView["turn"] != turn {
		t.Fatalf("turn = %v, want %q", scoresView["turn"], turn)
	}
	guesses := scoresView["guesses"].([]any)
	if len(guesses) != 1 {
		t.Fatalf("guesses = %v, want exactly the guesser", guesses)
	}
	guess := guesses[0].(map[string]any)
	if guess["name"] != guesser || guess["score"].(float64) != 3 {
		t.Fatalf("guess = %v, want %s with 3 points", guess, guesser)
	}
}

func TestAdminWordEndpoints(t *testing.T) {
	h := newTestHandler(t)

	env := decode(t, doRequest(t, h, "POST", "/api/admin/word", "", map[string]any{"lang": "en", "word": "apple"}))
	if env.Code != 0 {
		t.Fatalf("add word: code %d hint %q", env.Code, env.Hint)
	}

	env = decode(t, doRequest(t, h, "GET", "/api/admin/word?lang=en", "", nil))
	if env.Code != 0 {
		t.Fatalf("list words: code %d hint %q", env.Code, env.Hint)
	}
	var entries []game.WordEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decoding words: %v", err)
	}
	if len(entries) != 1 || entries[0].Word != "apple" {
		t.Fatalf("entries = %v, want the seeded word", entries)
	}
}
