package live

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/measure/internal/scenario"
	"github.com/vango-dev/measure/pkg/measure"
)

func newTestServer(t *testing.T, hub *Hub, reg *prometheus.Registry) *httptest.Server {
	t.Helper()
	s := New(hub, Config{MetricsPath: "/metrics", Gatherer: reg})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage error: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	return msg
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, NewHub("test"), prometheus.NewRegistry())

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestState(t *testing.T) {
	hub := NewHub("test")
	ts := newTestServer(t, hub, prometheus.NewRegistry())

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /state before any step = %d, want 404", resp.StatusCode)
	}

	hub.PublishStep(scenario.StepResult{Index: 3, Action: scenario.ActionRefresh, Bounds: measure.Rect{Width: 42}})
	resp, err = http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got scenario.StepResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Index != 3 || got.Bounds.Width != 42 {
		t.Errorf("state = %+v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := measure.NewMetrics(measure.WithRegistry(reg))
	ts := newTestServer(t, NewHub("test"), reg)

	sc, err := scenario.Parse([]byte("elements: [{id: a, rect: {width: 5, height: 5}}]\ntarget: a\nsteps: [mount, refresh]\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	r := scenario.NewRunner(sc, scenario.WithMeasureOptions(measure.WithMetrics(metrics)))
	if _, err := r.Run(context.Background(), scenario.NewManualDriver()); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `measure_detections_total{outcome="jump"} 1`) {
		t.Errorf("metrics output missing jump detection:\n%s", body)
	}
}

func TestWebSocketStream(t *testing.T) {
	hub := NewHub("panel")
	ts := newTestServer(t, hub, prometheus.NewRegistry())

	conn := dial(t, ts)
	hello := readMessage(t, conn)
	if hello.Type != MessageHello || hello.Scenario != "panel" || hello.Step != nil {
		t.Fatalf("hello = %+v", hello)
	}
	waitForClients(t, hub, 1)

	hooks := hub.Hooks()
	hooks.OnChange(scenario.Change{Field: measure.FieldWidth, Value: 12})
	hooks.OnStep(scenario.StepResult{Index: 1, Action: scenario.ActionFlush})

	change := readMessage(t, conn)
	if change.Type != MessageChange || change.Change == nil || change.Change.Value != 12 {
		t.Errorf("change message = %+v", change)
	}
	step := readMessage(t, conn)
	if step.Type != MessageStep || step.Step == nil || step.Step.Index != 1 {
		t.Errorf("step message = %+v", step)
	}

	// Late joiners get the latest step in their hello.
	late := dial(t, ts)
	if msg := readMessage(t, late); msg.Step == nil || msg.Step.Index != 1 {
		t.Errorf("late hello = %+v", msg)
	}
	waitForClients(t, hub, 2)

	hub.PublishDone(&scenario.Report{Name: "panel"})
	if msg := readMessage(t, conn); msg.Type != MessageDone || msg.Report == nil {
		t.Errorf("done message = %+v", msg)
	}

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() after Close = %d", hub.ClientCount())
	}
}

func TestJoinDuringStepsSeesLatestStep(t *testing.T) {
	hub := NewHub("panel")
	ts := newTestServer(t, hub, prometheus.NewRegistry())

	const last = 199
	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i <= last; i++ {
			hub.PublishStep(scenario.StepResult{Index: i})
		}
	}()

	conn := dial(t, ts)
	for {
		msg := readMessage(t, conn)
		if msg.Step != nil && msg.Step.Index == last {
			break
		}
	}
	<-published
}

func TestStalledClientIsDropped(t *testing.T) {
	hub := NewHub("panel")
	hub.writeTimeout = 50 * time.Millisecond
	ts := newTestServer(t, hub, prometheus.NewRegistry())

	// The client reads its hello and then stops reading.
	stalled := dial(t, ts)
	readMessage(t, stalled)
	waitForClients(t, hub, 1)

	payload := errors.New(strings.Repeat("x", 1<<20))
	for i := 0; i < 256 && hub.ClientCount() > 0; i++ {
		hub.PublishError(payload)
	}
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount() = %d, want the stalled client dropped", n)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(NewHub("test"), Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
