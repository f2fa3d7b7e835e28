package pages

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/adminportal/internal/render"
	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

// scriptedUi answers Ask from a fixed list and records the questions.
type scriptedUi struct {
	*cli.MockUi
	mu      sync.Mutex
	answers []string
	asked   []string
}

func (u *scriptedUi) Ask(query string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.asked = append(u.asked, query)
	if len(u.answers) == 0 {
		return "", io.EOF
	}
	a := u.answers[0]
	u.answers = u.answers[1:]
	return a, nil
}

type notice struct {
	Operation string
	Level     string
	Text      string
}

type recorder struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recorder) forOperation(op string) apicall.Notifier {
	return apicall.NotifierFuncs{
		Success: func(msg string) { r.add(op, "success", msg) },
		Error:   func(msg string) { r.add(op, "error", msg) },
	}
}

func (r *recorder) add(op, level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{Operation: op, Level: level, Text: text})
}

func (r *recorder) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

type harness struct {
	env    *Env
	ui     *scriptedUi
	out    *bytes.Buffer
	notes  *recorder
	client *adminapi.Client
	api    *fakeAPI
}

// fakeAPI routes "METHOD path" to handlers; unknown routes 404. A route can
// be made to fail at the transport level a number of times first.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	drops    map[string]*atomic.Int32
	requests []string
}

func (f *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeAPI) json(method, path string, status int, body string) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// dropFirst makes the next n requests to the route lose their connection.
func (f *fakeAPI) dropFirst(method, path string, n int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &atomic.Int32{}
	c.Store(n)
	f.drops[method+" "+path] = c
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.requests = append(f.requests, key)
	h := f.routes[key]
	drop := f.drops[key]
	f.mu.Unlock()

	if drop != nil && drop.Add(-1) >= 0 {
		hj, ok := w.(http.Hijacker)
		if ok {
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
				return
			}
		}
	}
	if h == nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	h(w, r)
}

func newHarness(t *testing.T, format render.Format, answers ...string) *harness {
	t.Helper()
	api := &fakeAPI{routes: map[string]http.HandlerFunc{}, drops: map[string]*atomic.Int32{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	// Keep-alives off so a dropped connection is never reused.
	transport := &http.Transport{DisableKeepAlives: true}
	client, err := adminapi.NewClient(&adminapi.Config{BaseURL: srv.URL}, &http.Client{Transport: transport}, nil)
	require.NoError(t, err)

	ui := &scriptedUi{MockUi: cli.NewMockUi(), answers: answers}
	out := &bytes.Buffer{}
	notes := &recorder{}
	env := &Env{
		UI:          ui,
		Renderer:    render.New(out, format),
		Notifier:    notes.forOperation,
		Interactive: true,
	}
	return &harness{env: env, ui: ui, out: out, notes: notes, client: client, api: api}
}
