package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: 09:00-10:00", domain.ErrOverlapsExisting), http.StatusConflict, domain.KindOverlapsExisting},
		{domain.ErrDeleteExistingFirst, http.StatusConflict, domain.KindDeleteExistingFirst},
		{domain.ErrPastSlot, http.StatusBadRequest, domain.KindPastSlot},
		{domain.ErrMissingActor, http.StatusBadRequest, domain.KindMissingActor},
		{domain.ErrSlotNotFound, http.StatusNotFound, domain.KindSlotNotFound},
		{domain.ErrShopNotFound, http.StatusNotFound, domain.KindShopNotFound},
		{domain.ErrForbidden, http.StatusForbidden, domain.KindForbidden},
		{errors.New("boom"), http.StatusInternalServerError, domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err, "msg")

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
		})
	}
}

func TestRespondDomainError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("pq: password authentication failed"), "secret detail")

	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Date string `json:"date"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2025-06-10","extra":1}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "2025-06-10", v.Date)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":`))
	assert.Error(t, DecodeJSON(r, &v))
}
