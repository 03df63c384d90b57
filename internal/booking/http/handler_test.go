package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloST8/xcorte-sub001/internal/booking"
	"github.com/PabloST8/xcorte-sub001/internal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := booking.NewService(nil, booking.NewMemoryStore(), nil, booking.Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	})

	r := gin.New()
	noop := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), noop)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const base = "/v1/enterprises/shop@mail.com/bookings"

func TestCreateBooking(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, base, map[string]any{
		"customerName": "Ana",
		"phone":        "(11) 99999-0000",
		"staffId":      "s1",
		"serviceName":  "Corte",
		"price":        "R$ 30,00",
		"duration":     45,
		"date":         "2025-03-10",
		"time":         "09:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Local)
	assert.Equal(t, "shop@mail.com", resp.EnterpriseEmail)
	assert.Equal(t, int64(3000), resp.ProductPrice)
	assert.Equal(t, "R$ 30,00", resp.ProductPriceFormatted)
	assert.Equal(t, "45min", resp.ProductDurationFormatted)
	assert.Equal(t, "09:45", resp.EndTime)
	assert.Equal(t, booking.StatusScheduled, resp.Status)
	assert.Equal(t, "agendado", resp.StatusLabel)

	w = do(r, http.MethodPost, base, map[string]any{
		"clientName": "Bruno", "clientPhone": "11988887777", "staffId": "s1", "date": "2025-03-10", "startTime": "09:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, booking.ErrSlotConflict.Message, errResp.Error)
}

func TestCreateBookingValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"bad enterprise", "/v1/enterprises/not-an-email/bookings", map[string]any{}, http.StatusBadRequest},
		{"malformed json", base, "{", http.StatusBadRequest},
		{"object where scalar expected", base, `{"clientName":{"first":"Ana"}}`, http.StatusBadRequest},
		{"missing name", base, map[string]any{"clientPhone": "1", "date": "2025-03-10"}, http.StatusBadRequest},
		{"missing phone", base, map[string]any{"clientName": "Ana", "date": "2025-03-10"}, http.StatusBadRequest},
		{"bad date", base, map[string]any{"clientName": "Ana", "clientPhone": "1", "date": "10/03/2025"}, http.StatusBadRequest},
		{"bad status", base, map[string]any{"clientName": "Ana", "clientPhone": "1", "date": "2025-03-10", "status": "archived"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestListUpdateDelete(t *testing.T) {
	r := newTestRouter(t)

	create := func(date, start string) BookingResponse {
		w := do(r, http.MethodPost, base, map[string]any{
			"clientName": "Ana", "clientPhone": "1", "staffId": "s1", "date": date, "startTime": start,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}
	today := create("2025-03-10", "09:00")
	create("2025-03-11", "09:00")

	var list response.ListResponse[BookingResponse]
	w := do(r, http.MethodGet, base+"?date=today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, today.ID, list.Items[0].ID)

	w = do(r, http.MethodGet, base+"?date=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, base+"/"+today.ID+"/status", map[string]any{"status": "canceled"})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(r, http.MethodGet, base+"?status=cancelled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "cancelado", list.Items[0].StatusLabel)

	w = do(r, http.MethodPatch, base+"/"+today.ID+"/status", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPatch, base+"/"+today.ID+"/status", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, base+"/"+today.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodDelete, base+"/"+today.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/v1/enterprises/other@mail.com/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, w.Body.String())
}
