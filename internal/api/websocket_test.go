package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
)

func wsURL(ts *httptest.Server, query string) string {
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if query != "" {
		u += "?" + query
	}
	return u
}

func dial(t *testing.T, ts *httptest.Server, query string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, query), header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("Dial() error = %v (status %d)", err, status)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg ClientMessage) ReplyMessage {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var reply ReplyMessage
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		// Skip job broadcasts from other tests sharing the hub.
		if reply.Type == "result" || reply.Type == "error" {
			return reply
		}
	}
}

func TestWebSocketParseAndProcess(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "", nil)

	reply := roundTrip(t, conn, ClientMessage{Type: "parse", ID: "1", Reference: "Matt. 5:3-4"})
	if reply.Type != "result" || reply.ID != "1" {
		t.Fatalf("reply = %+v", reply)
	}
	data, _ := json.Marshal(reply.Data)
	var single output.SingleReferenceResponse
	if err := json.Unmarshal(data, &single); err != nil {
		t.Fatal(err)
	}
	if !single.Success || single.Parsed.Book != "matt" || single.Parsed.VerseEnd != 4 {
		t.Errorf("single = %+v", single)
	}

	reply = roundTrip(t, conn, ClientMessage{Type: "process", ID: "2", Text: "See Moses 1:39."})
	data, _ = json.Marshal(reply.Data)
	var text output.TextProcessingResponse
	if err := json.Unmarshal(data, &text); err != nil {
		t.Fatal(err)
	}
	if reply.ID != "2" || text.ReferencesFound != 1 || !strings.Contains(text.OutputText, "[Moses 1:39](") {
		t.Errorf("text = %+v", text)
	}
}

func TestWebSocketErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "", nil)

	reply := roundTrip(t, conn, ClientMessage{Type: "translate", ID: "x"})
	if reply.Type != "error" || reply.Error.Code != "UNKNOWN_TYPE" || reply.ID != "x" {
		t.Errorf("unknown type reply = %+v", reply)
	}

	reply = roundTrip(t, conn, ClientMessage{Type: "parse", Reference: strings.Repeat("a", 300)})
	if reply.Type != "error" || reply.Error.Code != "INVALID_REQUEST" {
		t.Errorf("long reference reply = %+v", reply)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{nope")); err != nil {
		t.Fatal(err)
	}
	var raw ReplyMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatal(err)
	}
	if raw.Type != "error" || raw.Error.Code != "INVALID_JSON" {
		t.Errorf("bad JSON reply = %+v", raw)
	}
}

func TestWebSocketJobProgress(t *testing.T) {
	s, ts := newTestServer(t, nil)
	conn := dial(t, ts, "", nil)
	// A round trip guarantees the client is registered with the hub.
	roundTrip(t, conn, ClientMessage{Type: "parse", Reference: "Gen 1:1"})

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/jobs", JobRequest{References: []string{"Gen 1:1", "Ex 3:14"}}, nil)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var job Job
	if err := json.Unmarshal(env.Data, &job); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	sawProgress := false
	for {
		var msg ProgressMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if msg.JobID != job.ID {
			continue
		}
		if msg.Type == "progress" {
			sawProgress = true
		}
		if msg.Type == "complete" {
			if msg.Progress != 100 || msg.Data["successful"] != float64(2) {
				t.Errorf("complete = %+v", msg)
			}
			break
		}
	}
	if !sawProgress {
		t.Error("no progress messages before completion")
	}
	if s.hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d", s.hub.ClientCount())
	}
}

func TestWebSocketAuth(t *testing.T) {
	const key = "0123456789abcdef0123"
	_, ts := newTestServer(t, func(c *Config) { c.Auth = AuthConfig{Enabled: true, APIKey: key} })

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("dial without key: err = %v, resp = %v", err, resp)
	}
	_, resp, err = websocket.DefaultDialer.Dial(wsURL(ts, "api_key=wrong"), nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("dial with wrong key: err = %v", err)
	}

	dial(t, ts, "api_key="+key, nil)
	dial(t, ts, "", http.Header{"X-API-Key": {key}})
}

func TestWebSocketOrigin(t *testing.T) {
	_, ts := newTestServer(t, func(c *Config) { c.AllowedOrigins = []string{"https://app.example.com"} })

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), http.Header{"Origin": {"https://evil.example.net"}})
	if err == nil || resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign origin: err = %v, resp = %v", err, resp)
	}
	_, resp, err = websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	if err == nil {
		t.Errorf("missing origin should be rejected with a restricted list (resp = %v)", resp)
	}

	dial(t, ts, "", http.Header{"Origin": {"https://app.example.com"}})
}

func TestWebSocketRateLimiter(t *testing.T) {
	rl := NewWebSocketRateLimiter()
	c := &Client{}

	if rl.Allow(c) {
		t.Error("unregistered client should be denied")
	}
	rl.Register(c, 1)
	if !rl.Allow(c) || !rl.Allow(c) {
		t.Error("burst of two should be allowed")
	}
	if rl.Allow(c) {
		t.Error("third message should exceed the burst")
	}
	rl.Unregister(c)
	if rl.Allow(c) {
		t.Error("unregistered client should be denied")
	}
}

func TestHubBroadcastWithoutLoop(t *testing.T) {
	h := NewHub()
	if h.ClientCount() != 0 {
		t.Error("new hub should be empty")
	}
	// Broadcasts buffer while the loop is not running, then drop.
	for i := 0; i < sendBuffer+5; i++ {
		h.Broadcast(ProgressMessage{Type: "progress"})
	}
	if len(h.broadcast) != sendBuffer {
		t.Errorf("buffered %d messages, want %d", len(h.broadcast), sendBuffer)
	}
}
