package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><body><div id="alerts"></div><div id="staging-list"><p>old</p></div></body></html>`

type recorded struct {
	typ     events.Type
	target  string
	status  int
	payload string
}

type harness struct {
	client *Client
	doc    *dom.Document
	events []recorded
}

func newHarness(t *testing.T, server *httptest.Server) *harness {
	t.Helper()
	doc, err := dom.ParseString(testPage)
	require.NoError(t, err)

	h := &harness{doc: doc}
	d := events.NewDispatcher()
	for _, typ := range []events.Type{
		events.BeforeRequest, events.BeforeSwap, events.AfterSwap,
		events.AfterRequest, events.RequestFailed,
	} {
		require.NoError(t, d.On(typ, "", func(ev events.Event, _ *dom.Element) {
			r := recorded{typ: ev.Type, status: ev.Status, payload: ev.Payload}
			if ev.Target != nil {
				r.target = ev.Target.ID()
			}
			h.events = append(h.events, r)
		}))
	}

	h.client = New(WithBaseURL(server.URL))
	h.client.Bind(doc, d)
	return h
}

func (h *harness) types() []events.Type {
	types := make([]events.Type, 0, len(h.events))
	for _, r := range h.events {
		types = append(types, r.typ)
	}
	return types
}

func TestGetSwapsFragment(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, "/staging", r.URL.Path)
		fmt.Fprint(w, `<table><tbody><tr><td>new</td></tr></tbody></table>`)
	}))
	defer server.Close()

	h := newHarness(t, server)
	require.NoError(t, h.client.Get(context.Background(), "staging-list", "/staging"))

	assert.Equal(t, "true", gotHeaders.Get(HeaderRequest))
	assert.Equal(t, "staging-list", gotHeaders.Get(HeaderTarget))
	assert.Equal(t, "new", strings.TrimSpace(h.doc.ByID("staging-list").Text()))
	assert.Equal(t, []events.Type{
		events.BeforeRequest, events.BeforeSwap, events.AfterSwap, events.AfterRequest,
	}, h.types())
	assert.Equal(t, recorded{typ: events.AfterSwap, target: "staging-list", status: http.StatusOK}, h.events[2])
}

func TestPostSendsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		fmt.Fprintf(w, `<div class="alert">%s</div>`, r.PostForm.Get("name"))
	}))
	defer server.Close()

	h := newHarness(t, server)
	require.NoError(t, h.client.Post(context.Background(), "alerts", "/delete", map[string]string{"name": "posted"}))

	assert.Equal(t, "posted", h.doc.ByID("alerts").Text())
}

func TestPostFormRepeatedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		fmt.Fprintf(w, `<div class="alert">%s|%s</div>`, strings.Join(r.PostForm["track"], ","), r.PostForm.Get("title_value"))
	}))
	defer server.Close()

	h := newHarness(t, server)
	form := url.Values{"track": {"a.m4a", "b.m4a"}, "title_value": {"New"}}
	require.NoError(t, h.client.PostForm(context.Background(), "alerts", "/bulk-edit", form))

	assert.Equal(t, "a.m4a,b.m4a|New", h.doc.ByID("alerts").Text())
}

func TestErrorStatusWithBodyIsSwapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `<div class="alert alert-error">storage unavailable</div>`)
	}))
	defer server.Close()

	h := newHarness(t, server)
	require.NoError(t, h.client.Get(context.Background(), "staging-list", "/staging"))

	assert.Equal(t, "storage unavailable", h.doc.ByID("staging-list").Text())
	assert.Equal(t, recorded{typ: events.AfterSwap, target: "staging-list", status: http.StatusInternalServerError}, h.events[2])
}

func TestErrorStatusWithoutBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	h := newHarness(t, server)
	err := h.client.Get(context.Background(), "staging-list", "/missing")

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "old", h.doc.ByID("staging-list").Text())
	assert.Equal(t, []events.Type{events.BeforeRequest, events.RequestFailed, events.AfterRequest}, h.types())
	assert.Contains(t, h.events[1].payload, "Not Found")
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	h := newHarness(t, server)
	server.Close()

	err := h.client.Get(context.Background(), "staging-list", "/staging")

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "old", h.doc.ByID("staging-list").Text())
	require.Equal(t, []events.Type{events.BeforeRequest, events.RequestFailed, events.AfterRequest}, h.types())
	assert.Contains(t, h.events[1].payload, "alert-error")
	assert.Equal(t, "", h.events[1].target)
}

func TestFailureRenderer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	h := newHarness(t, server)
	server.Close()
	h.client.failure = func(err error) string { return "<p>custom</p>" }

	_ = h.client.Get(context.Background(), "staging-list", "/staging")

	assert.Equal(t, "<p>custom</p>", h.events[1].payload)
}

func TestNoContentRunsTriggersWithoutSwap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderTrigger, "refreshStaging")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	h := newHarness(t, server)
	fired := 0
	h.client.OnTrigger("refreshStaging", func(context.Context) error {
		fired++
		return nil
	})

	require.NoError(t, h.client.Post(context.Background(), "alerts", "/rip", nil))

	assert.Equal(t, 1, fired)
	assert.Equal(t, "", h.doc.ByID("alerts").InnerHTML())
	assert.Equal(t, []events.Type{events.BeforeRequest, events.AfterRequest}, h.types())
}

func TestTriggerAfterSwap(t *testing.T) {
	var stagingHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/delete", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderTriggerAfterSwap, "refreshStaging")
		fmt.Fprint(w, `<div class="alert">Files deleted</div>`)
	})
	mux.HandleFunc("/staging", func(w http.ResponseWriter, r *http.Request) {
		stagingHits.Add(1)
		fmt.Fprint(w, `<p>empty</p>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	h := newHarness(t, server)
	var alertsAtTrigger string
	h.client.OnTrigger("refreshStaging", func(ctx context.Context) error {
		alertsAtTrigger = h.doc.ByID("alerts").Text()
		return h.client.Get(ctx, "staging-list", "/staging")
	})

	require.NoError(t, h.client.Post(context.Background(), "alerts", "/delete", nil))

	assert.Equal(t, "Files deleted", alertsAtTrigger)
	assert.Equal(t, int32(1), stagingHits.Load())
	assert.Equal(t, "empty", h.doc.ByID("staging-list").Text())
}

func TestTriggerErrorsAreReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderTrigger, `{"a": null, "b": {"x": 1}}`)
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	h := newHarness(t, server)
	var order []string
	h.client.OnTrigger("a", func(context.Context) error {
		order = append(order, "a")
		return assert.AnError
	})
	h.client.OnTrigger("b", func(context.Context) error {
		order = append(order, "b")
		return nil
	})

	err := h.client.Get(context.Background(), "alerts", "/")

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestMissingTarget(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	h := newHarness(t, server)
	err := h.client.Get(context.Background(), "nowhere", "/")

	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.Equal(t, int32(0), hits.Load())
	assert.Empty(t, h.events)
}

func TestUnboundClient(t *testing.T) {
	err := New().Get(context.Background(), "alerts", "http://localhost/")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HeaderRequest))
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithUserAgent("test-agent"))
	doc, err := client.Load(context.Background(), "/")
	require.NoError(t, err)
	assert.NotNil(t, doc.ByID("staging-list"))

	_, err = client.Load(context.Background(), "/nope")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestRunnerIsUsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "x")
	}))
	defer server.Close()

	h := newHarness(t, server)
	runs := 0
	h.client.run = func(ctx context.Context, fn func()) error {
		runs++
		fn()
		return nil
	}

	require.NoError(t, h.client.Get(context.Background(), "alerts", "/"))
	assert.Equal(t, 2, runs)
}
