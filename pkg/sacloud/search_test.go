package sacloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func decodeSearchQuery(t *testing.T, r *http.Request) searchQuery {
	t.Helper()
	raw, err := url.QueryUnescape(r.URL.RawQuery)
	if err != nil {
		t.Fatalf("unescape query: %v", err)
	}
	var q searchQuery
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("decode query %q: %v", raw, err)
	}
	return q
}

func TestSearchPagination(t *testing.T) {
	// Three servers served in pages of two; the client must request From=0
	// then From=2 and concatenate.
	pages := map[uint64]string{
		0: `{"Total": 3, "From": 0, "Count": 2, "Servers": [{"ID": "1"}, {"ID": "2"}]}`,
		2: `{"Total": 3, "From": 2, "Count": 1, "Servers": [{"ID": "3"}]}`,
	}
	var requests int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := decodeSearchQuery(t, r)
		page, ok := pages[q.From]
		if !ok {
			t.Errorf("unexpected From=%d", q.From)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(page))
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	results, err := c.Search(context.Background(), "server", "Servers", SearchOptions{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if requests != 2 {
		t.Errorf("expected 2 page requests, got %d", requests)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	var last struct {
		ID string `json:"ID"`
	}
	if err := json.Unmarshal(results[2], &last); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if last.ID != "3" {
		t.Errorf("expected last result ID 3, got %s", last.ID)
	}
}

func TestSearchForwardsFilter(t *testing.T) {
	var gotFilter any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = decodeSearchQuery(t, r).Filter
		w.Write([]byte(`{"Total": 0, "From": 0, "Count": 0, "Servers": []}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	res, err := c.SearchByName(context.Background(), KindServer, "demo-server")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res != nil {
		t.Errorf("expected no match, got %s", res)
	}
	want := `{"Name":["demo-server"]}`
	got, _ := json.Marshal(gotFilter)
	if string(got) != want {
		t.Errorf("expected filter %s, got %s", want, got)
	}
}

func TestSearchMalformedResponses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason SearchErrorReason
	}{
		{
			name:       "missing total",
			body:       `{"From": 0, "Count": 0, "Servers": []}`,
			wantReason: SearchInvalidTotal,
		},
		{
			name:       "missing from",
			body:       `{"Total": 0, "Count": 0, "Servers": []}`,
			wantReason: SearchInvalidFrom,
		},
		{
			name:       "from echo mismatch",
			body:       `{"Total": 10, "From": 5, "Count": 0, "Servers": []}`,
			wantReason: SearchFromMismatch,
		},
		{
			name:       "missing count",
			body:       `{"Total": 0, "From": 0, "Servers": []}`,
			wantReason: SearchInvalidCount,
		},
		{
			name:       "missing resource array",
			body:       `{"Total": 1, "From": 0, "Count": 1}`,
			wantReason: SearchInvalidArray,
		},
		{
			name:       "resource array is not an array",
			body:       `{"Total": 1, "From": 0, "Count": 1, "Servers": "oops"}`,
			wantReason: SearchInvalidArray,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := newTestClient(t, ts)
			_, err := c.Search(context.Background(), "server", "Servers", SearchOptions{})
			var se *SearchError
			if !errors.As(err, &se) {
				t.Fatalf("expected SearchError, got %v", err)
			}
			if se.Reason != tt.wantReason {
				t.Errorf("expected reason %s, got %s", tt.wantReason, se.Reason)
			}
		})
	}
}

func TestSearchOneRejectsDuplicates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Total": 2, "From": 0, "Count": 2, "Switches": [{"ID": "1"}, {"ID": "2"}]}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	_, err := c.SearchByName(context.Background(), KindSwitch, "dup")
	var tme *TooManyResourcesError
	if !errors.As(err, &tme) {
		t.Fatalf("expected TooManyResourcesError, got %v", err)
	}
	if tme.Count != 2 {
		t.Errorf("expected count 2, got %d", tme.Count)
	}
}

func TestSearchOneSingleMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Total": 1, "From": 0, "Count": 1, "Archives": [{"ID": "890"}]}`)
	}))
	defer ts.Close()

	c := newTestClient(t, ts)
	raw, err := c.SearchOneByTags(context.Background(), KindArchive, []string{"ubuntu-22.04-latest"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if raw == nil {
		t.Fatal("expected a match")
	}
}
