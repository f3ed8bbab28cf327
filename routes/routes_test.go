package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotel-reservation/controllers"
	"hotel-reservation/middleware"
	"hotel-reservation/services"
	"hotel-reservation/testutil"
)

func newRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	clk := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return SetupRouter(
		controllers.NewRoomController(services.NewRoomService(db, clk)),
		controllers.NewGuestController(services.NewGuestService(db, clk)),
		controllers.NewReservationController(services.NewReservationService(db, clk, time.UTC)),
		opts,
	)
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func roomBody(number int) gin.H {
	return gin.H{
		"number":   number,
		"capacity": 2,
		"category": "BASIC",
		"price":    "150.00",
		"tv":       true,
		"beds":     []string{"SINGLE", "SINGLE"},
	}
}

func guestBody(cpf string) gin.H {
	return gin.H{
		"firstName": "Maria",
		"lastName":  "Silva",
		"cpf":       cpf,
		"email":     "maria@example.com",
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(t, Options{})
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil).Code)

	do(t, r, http.MethodGet, "/api/rooms", nil)
	w := do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotel_http_requests_total")
}

func TestRooms(t *testing.T) {
	r := newRouter(t, Options{})

	w := do(t, r, http.MethodPost, "/api/rooms", roomBody(101))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	room := decode(t, w)
	id := room["id"].(string)
	assert.Equal(t, "150.00", room["price"])
	assert.Equal(t, "FREE", room["availability"])
	assert.Equal(t, []any{"SINGLE", "SINGLE"}, room["beds"])

	w = do(t, r, http.MethodPost, "/api/rooms", roomBody(101))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", decode(t, w)["status"])

	w = do(t, r, http.MethodPatch, "/api/rooms/"+id, gin.H{"capacity": 3, "minibar": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 3, decode(t, w)["capacity"])

	w = do(t, r, http.MethodPatch, "/api/rooms/"+id, gin.H{"capacity": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/api/rooms/"+id+"/availability", gin.H{"availability": "MAINTENANCE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/rooms?availability=FREE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/rooms/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/rooms/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRooms_ValidationErrors(t *testing.T) {
	r := newRouter(t, Options{})

	w := do(t, r, http.MethodPost, "/api/rooms", gin.H{"number": 101, "category": "PENTHOUSE", "beds": []string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "capacity")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "beds")

	bad := roomBody(101)
	bad["price"] = "0"
	w = do(t, r, http.MethodPost, "/api/rooms", bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "price")
}

func TestGuests(t *testing.T) {
	r := newRouter(t, Options{})

	w := do(t, r, http.MethodPost, "/api/guests", guestBody("52998224725"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	guest := decode(t, w)
	assert.Equal(t, "529.982.247-25", guest["cpf"])
	assert.Equal(t, "Maria Silva", guest["fullName"])

	w = do(t, r, http.MethodPost, "/api/guests", guestBody("529.982.247-25"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/guests", guestBody("52998224700"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "cpf")

	w = do(t, r, http.MethodGet, "/api/guests/cpf/529.982.247-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, guest["id"], decode(t, w)["id"])

	w = do(t, r, http.MethodPut, "/api/guests/"+guest["id"].(string), gin.H{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new@example.com", decode(t, w)["email"])

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/guests/"+guest["id"].(string), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/guests/"+guest["id"].(string), nil).Code)
}

func TestReservations(t *testing.T) {
	r := newRouter(t, Options{})
	roomID := decode(t, do(t, r, http.MethodPost, "/api/rooms", roomBody(101)))["id"]
	guestID := decode(t, do(t, r, http.MethodPost, "/api/guests", guestBody("52998224725")))["id"]

	body := gin.H{"roomId": roomID, "guestId": guestID, "checkIn": "2024-03-02", "checkOut": "2024-03-04"}
	w := do(t, r, http.MethodPost, "/api/reservations", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode(t, w)
	id := res["id"].(string)
	assert.Equal(t, "PENDING", res["status"])
	assert.Equal(t, "300.00", res["total"])
	assert.EqualValues(t, 2, res["nights"])
	assert.EqualValues(t, 101, res["roomNumber"])
	assert.Equal(t, "Maria Silva", res["guestName"])

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/api/reservations", body).Code)

	w = do(t, r, http.MethodPatch, "/api/reservations/"+id, gin.H{"checkOut": "2024-03-05"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "450.00", decode(t, w)["total"])

	w = do(t, r, http.MethodPatch, "/api/reservations/"+id, gin.H{"checkOut": "05/03/2024"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "checkOut")

	w = do(t, r, http.MethodPost, "/api/reservations/"+id+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", decode(t, w)["status"])
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/api/reservations/"+id+"/confirm", nil).Code)

	w = do(t, r, http.MethodGet, "/api/reservations?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/reservations/"+id, nil).Code)
	w = do(t, r, http.MethodGet, "/api/reservations/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CANCELLED", decode(t, w)["status"])
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/api/reservations/"+id, nil).Code)

	w = do(t, r, http.MethodGet, "/api/rooms/"+roomID.(string), nil)
	assert.Equal(t, "FREE", decode(t, w)["availability"])

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/reservations/missing/check-in", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/reservations?active=maybe", nil).Code)
}

func TestReservations_RejectsBadDates(t *testing.T) {
	r := newRouter(t, Options{})
	roomID := decode(t, do(t, r, http.MethodPost, "/api/rooms", roomBody(101)))["id"]
	guestID := decode(t, do(t, r, http.MethodPost, "/api/guests", guestBody("52998224725")))["id"]

	w := do(t, r, http.MethodPost, "/api/reservations",
		gin.H{"roomId": roomID, "guestId": guestID, "checkIn": "2024-02-20", "checkOut": "2024-02-22"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "checkIn")

	w = do(t, r, http.MethodPost, "/api/reservations",
		gin.H{"roomId": roomID, "guestId": guestID, "checkIn": "tomorrow", "checkOut": "2024-02-22"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "checkIn")
}

func TestAPIKeyProtectsWrites(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newRouter(t, Options{APIKeyHash: string(hash)})

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/api/rooms", roomBody(101)).Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(t, r, http.MethodPost, "/api/rooms", roomBody(101), middleware.APIKeyHeader, "wrong").Code)
	assert.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/api/rooms", roomBody(101), middleware.APIKeyHeader, "s3cret").Code)
	assert.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/api/rooms", roomBody(102), "Authorization", "Bearer s3cret").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/rooms", nil).Code)
}
