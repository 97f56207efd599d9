package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

type archiveStub struct {
	keys []string
	body string
}

func (a *archiveStub) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	b, _ := io.ReadAll(reader)
	a.keys = append(a.keys, key)
	a.body = string(b)
	return nil
}

func (a *archiveStub) Delete(ctx context.Context, key string) error { return nil }

func (a *archiveStub) GetURL(key string) string { return "http://exports.local/" + key }

func newTestHandler() (*Handler, *archiveStub) {
	archive := &archiveStub{}
	repo := NewRepository(docstore.NewMemoryStore())
	return NewHandler(NewService(repo, archive)), archive
}

type envelope struct {
	OK    bool              `json:"ok"`
	Item  *PayoutResponse   `json:"item"`
	Items []*PayoutResponse `json:"items"`
	Error string            `json:"error"`
}

func do(t *testing.T, h http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestCreateListUpdateDeleteFlow(t *testing.T) {
	h, _ := newTestHandler()

	rec, env := do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"prov-1","amount":1500}`)
	if rec.Code != http.StatusCreated || !env.OK {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	if env.Item.Currency != "INR" || env.Item.Status != "pending" {
		t.Fatalf("expected defaults applied, got %+v", env.Item)
	}
	if env.Item.CreatedAt == 0 || env.Item.UpdatedAt < env.Item.CreatedAt {
		t.Fatalf("bad timestamps: %+v", env.Item)
	}
	id := env.Item.ID

	_, env = do(t, h.List, http.MethodGet, "/list", "")
	if len(env.Items) != 1 || env.Items[0].ID != id {
		t.Fatalf("expected one payout, got %+v", env.Items)
	}

	rec, env = do(t, h.Update, http.MethodPost, "/update", `{"id":"`+id+`","status":"completed"}`)
	if rec.Code != http.StatusOK || env.Item.Status != "completed" {
		t.Fatalf("update failed: %d %+v", rec.Code, env.Item)
	}

	rec, env = do(t, h.Delete, http.MethodDelete, "/delete", `{"id":"`+id+`"}`)
	if rec.Code != http.StatusOK || !env.OK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	_, env = do(t, h.List, http.MethodGet, "/list", "")
	if len(env.Items) != 0 {
		t.Fatalf("expected empty list, got %+v", env.Items)
	}
}

func TestCreateRejectsMissingProviderAndBadAmount(t *testing.T) {
	h, _ := newTestHandler()

	rec, env := do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"","amount":100}`)
	if rec.Code != http.StatusUnprocessableEntity || env.OK {
		t.Fatalf("expected validation failure, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(env.Error, "provider_id") {
		t.Fatalf("expected provider_id in error, got %q", env.Error)
	}

	rec, env = do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"p","amount":-5}`)
	if rec.Code != http.StatusUnprocessableEntity || env.OK {
		t.Fatalf("expected amount rejection, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestListFiltersByStatus(t *testing.T) {
	h, _ := newTestHandler()

	for _, status := range []string{"pending", "completed", "failed"} {
		do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"p","amount":10,"status":"`+status+`"}`)
	}

	_, env := do(t, h.List, http.MethodGet, "/list?status=completed", "")
	if len(env.Items) != 1 || env.Items[0].Status != "completed" {
		t.Fatalf("expected one completed payout, got %+v", env.Items)
	}
}

func TestUpdateUnknownPayout(t *testing.T) {
	h, _ := newTestHandler()

	rec, env := do(t, h.Update, http.MethodPost, "/update", `{"id":"nope","status":"failed"}`)
	if rec.Code != http.StatusNotFound || env.OK {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == "" {
		t.Fatal("expected error message in envelope")
	}
}

func TestExportWritesCSVToArchive(t *testing.T) {
	h, archive := newTestHandler()

	do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"p1","amount":100,"notes":"weekly, upi"}`)
	do(t, h.Create, http.MethodPost, "/create", `{"provider_id":"p2","amount":250}`)

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	if len(archive.keys) != 1 {
		t.Fatalf("expected one archived export, got %v", archive.keys)
	}
	if !strings.HasPrefix(archive.body, "id,provider_id,amount,") {
		t.Fatalf("unexpected CSV header: %q", archive.body)
	}
	if !strings.Contains(archive.body, `"weekly, upi"`) {
		t.Fatalf("expected quoted comma field, got %q", archive.body)
	}
	if !strings.HasSuffix(archive.body, "\n") || strings.HasSuffix(archive.body, "\n\n") {
		t.Fatal("expected exactly one trailing newline")
	}
}
