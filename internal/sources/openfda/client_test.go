package openfda

import (
	"context"
	"encoding/json"
	"fmt"
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
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "openfda.brand_name:advil" {
			t.Errorf("search = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"openfda":{"brand_name":["Advil"],"generic_name":["Ibuprofen"]},"purpose":["Pain reliever"],"effective_time":"20240101"},
			{"openfda":{"brand_name":["Advil PM"]},"effective_time":"20230601"}
		]}`))
	})

	drugs, err := c.SearchDrugs(context.Background(), "advil", 10)
	if err != nil {
		t.Fatalf("SearchDrugs failed: %v", err)
	}
	if len(drugs) != 2 {
		t.Fatalf("got %d drugs, want 2", len(drugs))
	}
	if drugs[0].Field("brand_name", "") != "Advil" {
		t.Errorf("brand = %q", drugs[0].Field("brand_name", ""))
	}
	if drugs[1].Field("generic_name", "Not specified") != "Not specified" {
		t.Errorf("missing generic_name should fall back to default")
	}
}

func TestSearchDrugs_LimitEnforcedClientSide(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Upstream ignores the limit and returns 10 records.
		var results []map[string]any
		for i := 0; i < 10; i++ {
			results = append(results, map[string]any{
				"openfda":        map[string][]string{"brand_name": {fmt.Sprintf("Drug %d", i)}},
				"effective_time": "20240101",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})

	drugs, err := c.SearchDrugs(context.Background(), "drug", 3)
	if err != nil {
		t.Fatalf("SearchDrugs failed: %v", err)
	}
	if len(drugs) != 3 {
		t.Fatalf("got %d drugs, want exactly 3", len(drugs))
	}
	// Source order preserved.
	for i, d := range drugs {
		want := fmt.Sprintf("Drug %d", i)
		if got := d.Field("brand_name", ""); got != want {
			t.Errorf("drugs[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestGetDrugByNDC(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "openfda.product_ndc:0573-0164" {
			t.Errorf("search = %q", got)
		}
		w.Write([]byte(`{"results":[{"openfda":{"brand_name":["Advil"]},"warnings":["Do not exceed recommended dose"],"effective_time":"20240101"}]}`))
	})

	drug, err := c.GetDrugByNDC(context.Background(), "0573-0164")
	if err != nil {
		t.Fatalf("GetDrugByNDC failed: %v", err)
	}
	if drug == nil {
		t.Fatal("expected a drug")
	}
	if len(drug.Warnings) != 1 {
		t.Errorf("warnings = %v", drug.Warnings)
	}
}

func TestGetDrugByNDC_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	drug, err := c.GetDrugByNDC(context.Background(), "0000-0000")
	if err != nil {
		t.Fatalf("GetDrugByNDC failed: %v", err)
	}
	if drug != nil {
		t.Errorf("expected nil, got %+v", drug)
	}
}

func TestSearchDrugs_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	if _, err := c.SearchDrugs(context.Background(), "nothing", 10); err == nil {
		t.Fatal("expected error for 404")
	}
}
