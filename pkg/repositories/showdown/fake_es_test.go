package showdown

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// fakeElasticsearch serves the handful of endpoints the repository uses
type fakeElasticsearch struct {
	*httptest.Server
	mu        sync.Mutex
	indices   map[string]bool
	docs      map[string]map[string]json.RawMessage
	requests  []string
	failIndex bool
}

func newFakeElasticsearch() *fakeElasticsearch {
	f := &fakeElasticsearch{
		indices: make(map[string]bool),
		docs:    make(map[string]map[string]json.RawMessage),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeElasticsearch) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// The client refuses to talk to servers that do not identify as Elasticsearch
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	index := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodHead:
		if !f.indices[index] {
			w.WriteHeader(http.StatusNotFound)
		}

	case len(parts) == 1 && r.Method == http.MethodPut:
		f.indices[index] = true
		f.docs[index] = make(map[string]json.RawMessage)
		w.Write([]byte(`{"acknowledged": true, "index": "` + index + `"}`))

	case len(parts) == 3 && parts[1] == "_doc" && (r.Method == http.MethodPut || r.Method == http.MethodPost):
		if f.failIndex {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "unavailable"}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.docs[index][parts[2]] = body
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": "created", "_id": "` + parts[2] + `"}`))

	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodGet:
		doc, ok := f.docs[index][parts[2]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"found": false}`))
			return
		}
		resp, _ := json.Marshal(map[string]interface{}{"found": true, "_id": parts[2], "_source": doc})
		w.Write(resp)

	case len(parts) == 2 && parts[1] == "_search":
		f.search(w, r, index)

	default:
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "unsupported request"}`))
	}
}

func (f *fakeElasticsearch) search(w http.ResponseWriter, r *http.Request, index string) {
	var matches []entities.ShowdownRecord
	for _, doc := range f.docs[index] {
		var record entities.ShowdownRecord
		if err := json.Unmarshal(doc, &record); err != nil {
			continue
		}
		if record.Disagrees() {
			matches = append(matches, record)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].EvaluatedAt.After(matches[j].EvaluatedAt)
	})
	if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && size < len(matches) {
		matches = matches[:size]
	}

	hits := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, map[string]interface{}{"_source": m})
	}
	resp, _ := json.Marshal(map[string]interface{}{
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(hits)},
			"hits":  hits,
		},
	})
	w.Write(resp)
}

func (f *fakeElasticsearch) setFailIndex(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failIndex = fail
}

func (f *fakeElasticsearch) indexCreated(index string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indices[index]
}

func (f *fakeElasticsearch) countRequests(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}
