package out_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	proposalout "grafik/internal/modules/proposal/adapter/out"
	"grafik/internal/modules/proposal/domain"
	"grafik/internal/platform/httpapi"
)

func TestListAcceptsToApproveAlias(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/proposals" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"incoming": [],
			"outgoing": [{"id": 1, "my_date": "2026-05-12", "their_date": "2026-05-13", "status": "pending"}],
			"to_approve": [{"id": 2, "give": {"date": "2026-05-20"}, "take": {"date": "21.05.2026"}, "status": "accepted"}]
		}`)
	}))
	defer srv.Close()

	gw := proposalout.NewHTTPProposalGateway(httpapi.New(nil, httpapi.Options{BaseURL: srv.URL + "/api"}))
	raw, err := gw.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(raw.Incoming) != 0 || len(raw.Outgoing) != 1 || len(raw.ForApproval) != 1 {
		t.Fatalf("unexpected buckets %+v", raw)
	}
	p, recovered := domain.Extract(raw.ForApproval[0])
	if p.ID != 2 || p.MyDate != "2026-05-20" || p.TheirDate != "2026-05-21" || len(recovered) != 2 {
		t.Fatalf("unexpected recovered proposal %+v (%v)", p, recovered)
	}
}
