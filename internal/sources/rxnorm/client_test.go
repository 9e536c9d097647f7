package rxnorm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(fetch.NewClient(5*time.Second), ts.URL)
}

func TestSearchDrugs(t *testing.T) {
	var gotName string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		w.Write([]byte(`{"drugGroup":{"conceptGroup":[
			{"concept":[
				{"name":"aspirin","rxcui":"1191","tty":"IN","language":"ENG","synonym":["ASA","acetylsalicylic acid"]},
				{"name":"aspirin 325 MG Oral Tablet","rxcui":"243670","tty":"SCD","language":"ENG"}
			]},
			{"concept":[{"name":"other group","rxcui":"999","tty":"BN","language":"ENG"}]}
		]}}`))
	})

	drugs, err := c.SearchDrugs(context.Background(), "aspirin", 10)
	if err != nil {
		t.Fatalf("SearchDrugs failed: %v", err)
	}
	if gotName != "aspirin" {
		t.Errorf("name param = %q", gotName)
	}
	// Only the first concept group is read.
	if len(drugs) != 2 {
		t.Fatalf("got %d drugs, want 2", len(drugs))
	}
	if drugs[0].RxCUI != "1191" {
		t.Errorf("rxcui = %q", drugs[0].RxCUI)
	}
	if len(drugs[0].Synonym) != 2 {
		t.Errorf("synonyms = %v", drugs[0].Synonym)
	}
	if len(drugs[1].Synonym) != 0 {
		t.Errorf("expected no synonyms, got %v", drugs[1].Synonym)
	}
}

func TestSearchDrugs_Limit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"drugGroup":{"conceptGroup":[{"concept":[
			{"name":"a","rxcui":"1","tty":"IN","language":"ENG"},
			{"name":"b","rxcui":"2","tty":"IN","language":"ENG"},
			{"name":"c","rxcui":"3","tty":"IN","language":"ENG"}
		]}]}}`))
	})

	drugs, err := c.SearchDrugs(context.Background(), "x", 2)
	if err != nil {
		t.Fatalf("SearchDrugs failed: %v", err)
	}
	if len(drugs) != 2 {
		t.Fatalf("got %d drugs, want 2", len(drugs))
	}
	if drugs[0].RxCUI != "1" || drugs[1].RxCUI != "2" {
		t.Errorf("order not preserved: %+v", drugs)
	}
}

func TestSearchDrugs_NoGroups(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"drugGroup":{"name":"nonexistent"}}`))
	})

	drugs, err := c.SearchDrugs(context.Background(), "nonexistent", 10)
	if err != nil {
		t.Fatalf("SearchDrugs failed: %v", err)
	}
	if drugs != nil {
		t.Errorf("expected nil, got %+v", drugs)
	}
}
