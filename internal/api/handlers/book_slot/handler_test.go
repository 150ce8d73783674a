package book_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/infra/storage/memory"
	"github.com/khan47650/central-kitchen/internal/integrations/notifier"
	"github.com/khan47650/central-kitchen/internal/service/slots/models"
	bookSlot "github.com/khan47650/central-kitchen/internal/usecase/book_slot"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/types"
	"github.com/khan47650/central-kitchen/pkg/zonetime"
)

func setup(t *testing.T) (*mux.Router, *memory.Store) {
	t.Helper()

	zone, err := zonetime.Load(zonetime.DefaultZone)
	require.NoError(t, err)
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, zone.Location())
	zone = zone.WithClock(func() time.Time { return now })

	store := memory.NewStore()
	uc := bookSlot.NewUseCase(store.Slots, store.Tx, zone, notifier.Noop{}, nil, logger.Nop(), domain.DefaultMaxBookingHours)

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/slots/{slotId}/book", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)
	return r, store
}

func book(r *mux.Router, slotID, role, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/"+slotID+"/book", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserRole, role)
	req.Header.Set(middleware.HeaderUserID, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, store *memory.Store, start, end string) string {
	t.Helper()
	slot, err := store.Slots.Create(context.Background(), &domain.Slot{
		Date: "2025-06-10", StartTime: types.TimeString(start), EndTime: types.TimeString(end), State: domain.SlotFree,
	})
	require.NoError(t, err)
	return slot.ID
}

func kindOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Kind
}

func TestHandle_BookAndConflicts(t *testing.T) {
	r, store := setup(t)
	future := seed(t, store, "15:00", "16:00")
	past := seed(t, store, "13:00", "14:00")

	rec := book(r, future, "client", "u1", `{"durationHours":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var slot models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
	assert.True(t, slot.Booked)
	assert.Equal(t, "17:00", slot.EndTime)

	rec = book(r, future, "client", "u2", `{"durationHours":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.KindAlreadyBooked, kindOf(t, rec))

	rec = book(r, future, "admin", "", `{"durationHours":1,"makeUnavailable":true}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.KindDeleteExistingFirst, kindOf(t, rec))

	rec = book(r, past, "client", "u1", `{"durationHours":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.KindPastSlot, kindOf(t, rec))

	rec = book(r, "missing", "client", "u1", `{"durationHours":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.KindSlotNotFound, kindOf(t, rec))

	rec = book(r, future, "client", "", `{"durationHours":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type failingUseCase struct {
	err error
}

func (f failingUseCase) Execute(context.Context, *bookSlot.Request) (*domain.Slot, error) {
	return nil, f.err
}

func TestHandle_UnreadableStoredTimeIsBadRequest(t *testing.T) {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	uc := failingUseCase{err: fmt.Errorf("%w: parsing time \"9am\"", domain.ErrInvalidTimeFormat)}
	r.HandleFunc("/api/v1/slots/{slotId}/book", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	rec := book(r, "s1", "client", "u1", `{"durationHours":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.KindInvalidTimeFormat, kindOf(t, rec))
}
