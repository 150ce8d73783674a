package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/khan47650/central-kitchen/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20

	kindUnauthorized    = "Unauthorized"
	kindTooManyRequests = "TooManyRequests"
)

// ErrorResponse тело ответа с ошибкой. Kind стабилен, клиенты ветвятся по нему.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DecodeJSON читает тело запроса в v, неизвестные поля игнорируются
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return err
	}
	return nil
}

// RespondJSON пишет v с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с явным статусом и видом
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// RespondDomainError выбирает статус по виду ошибки err
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	kind := domain.KindOf(err)
	status := StatusForKind(kind)
	if status == http.StatusInternalServerError {
		message = msgInternalError
	}
	RespondError(w, status, kind, message)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.KindInvalidInput, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, kindUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, domain.KindForbidden, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, kindTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// StatusForKind HTTP статус для вида ошибки
func StatusForKind(kind string) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindInvalidTimeFormat, domain.KindMissingActor,
		domain.KindPastSlot, domain.KindInvalidRow:
		return http.StatusBadRequest
	case domain.KindSlotNotFound, domain.KindShopNotFound:
		return http.StatusNotFound
	case domain.KindOverlapsExisting, domain.KindOverlapsUnavailable, domain.KindAlreadyBooked,
		domain.KindSlotUnavailable, domain.KindDeleteExistingFirst:
		return http.StatusConflict
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
