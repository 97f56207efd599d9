package adminclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyakarta/karyakarta-api/internal/controller"
	"github.com/karyakarta/karyakarta-api/internal/pkg/httpclient"
)

func newTestAPI(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	hc := httpclient.New(httpclient.NewNetState(), 5*time.Second)
	return New(hc, srv.URL)
}

func TestListNormalizesMixedTimestampShapes(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/payouts/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"items":[
			{"id":"a","provider_id":"p1","amount":100,"created_at":1773480413000,"updated_at":1773480413000},
			{"id":"b","provider_id":"p2","amount":50,"created_at":"2026-03-14T09:26:53Z","updated_at":"2026-03-14T09:26:53Z"},
			{"id":"c","provider_id":"p3","amount":25,"created_at":{"seconds":1773480413,"nanoseconds":0},"updated_at":null}
		]}`))
	}))

	payouts, err := NewPayoutClient(api).List(context.Background(), controller.ListParams{})
	require.NoError(t, err)
	require.Len(t, payouts, 3)

	// Three wire shapes, one instant.
	want := Timestamp(1773480413000)
	assert.Equal(t, want, payouts[0].CreatedAt)
	assert.Equal(t, want, payouts[1].CreatedAt)
	assert.Equal(t, want, payouts[2].CreatedAt)
	assert.Equal(t, TimeUnknown, payouts[2].UpdatedAt)
	assert.Equal(t, "-", payouts[2].UpdatedAt.String())
}

func TestListAppliesCurrencyAndStatusDefaults(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"items":[{"id":"a","provider_id":"p1","amount":100}]}`))
	}))

	payouts, err := NewPayoutClient(api).List(context.Background(), controller.ListParams{})
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, "INR", payouts[0].Currency)
	assert.Equal(t, "pending", payouts[0].Status)
}

func TestListForwardsLimitAndStatus(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		w.Write([]byte(`{"ok":true,"items":[]}`))
	}))

	_, err := NewPayoutClient(api).List(context.Background(), controller.ListParams{Limit: 50, Status: "completed"})
	require.NoError(t, err)
}

func TestServerErrorMessageSurfacesVerbatim(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ok":false,"error":"amount: Must be greater than 0"}`))
	}))

	_, err := NewPayoutClient(api).Create(context.Background(), Payout{ProviderID: "p1", Amount: -1})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "amount: Must be greater than 0", apiErr.Message)
}

func TestEnvelopeOKFalseWithoutStatusError(t *testing.T) {
	// Some proxies rewrite status codes. ok:false alone must still fail.
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"session expired"}`))
	}))

	_, err := NewPayoutClient(api).List(context.Background(), controller.ListParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "session expired", apiErr.Message)
}

func TestDeleteSendsID(t *testing.T) {
	var gotBody string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"ok":true}`))
	}))

	err := NewPayoutClient(api).Delete(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"pay-1"}`, gotBody)
}

func TestControllerRejectsInvalidPayoutBeforeNetwork(t *testing.T) {
	hits := 0
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"ok":true,"items":[]}`))
	}))

	ctrl := controller.New(controller.Config[Payout]{
		Client:         NewPayoutClient(api),
		ValidateCreate: ValidatePayout,
	})
	defer ctrl.Close()

	err := ctrl.Create(context.Background(), Payout{ProviderID: "", Amount: 100})
	require.Error(t, err)
	assert.Equal(t, 0, hits, "invalid create must never reach the server")

	err = ctrl.Create(context.Background(), Payout{ProviderID: "p1", Amount: -5})
	require.Error(t, err)
	assert.Equal(t, 0, hits)

	require.NoError(t, ValidatePayout(Payout{ProviderID: "p1", Amount: 100}))
	require.Error(t, ValidateProvider(Provider{Name: "X"}))
	require.NoError(t, ValidateProvider(Provider{Name: "X", Phone: "123", Category: "other"}))
}

func TestProviderStatusValueMapsActivity(t *testing.T) {
	assert.Equal(t, "active", Provider{Active: true}.StatusValue())
	assert.Equal(t, "inactive", Provider{}.StatusValue())
}
