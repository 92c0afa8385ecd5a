// Package handlers общие функции HTTP ответов; обработчики маршрутов лежат в подпакетах
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

const (
	msgValidation        = "некорректные параметры запроса"
	msgNotFound          = "не найдено"
	msgForbidden         = "доступ запрещен"
	msgConflict          = "конфликт с текущим состоянием"
	msgInvalidTransition = "операция недопустима в текущем статусе"
	msgInternal          = "внутренняя ошибка сервера"
	msgUnauthorized      = "требуется аутентификация"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code     int               `json:"code"`
	Kind     string            `json:"kind"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	Conflict *ConflictDetails  `json:"conflict,omitempty"`
}

// ConflictDetails сущность, с которой произошёл конфликт
type ConflictDetails struct {
	SlotID    uuid.UUID `json:"slotId"`
	EventID   *int64    `json:"eventId,omitempty"`
	Date      string    `json:"date,omitempty"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с видом, соответствующим статусу
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, &ErrorResponse{
		Code:    status,
		Kind:    kindForStatus(status),
		Message: message,
	})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidation 400 с ошибками по полям
func RespondValidation(w http.ResponseWriter, field, message string) {
	RespondJSON(w, http.StatusBadRequest, &ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    domain.KindValidation,
		Message: msgValidation,
		Fields:  map[string]string{field: message},
	})
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgUnauthorized
	}
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500, детали ошибки клиенту не отдаются
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternal)
}

// RespondDomainError отвечает ошибкой usecase или сервиса, статус определяется видом ошибки
// notFoundMsg используется для 404, пустая строка означает сообщение по умолчанию
func RespondDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	kind := domain.KindOf(err)
	resp := &ErrorResponse{Kind: kind}

	switch kind {
	case domain.KindValidation:
		resp.Code = http.StatusBadRequest
		resp.Message = msgValidation
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Fields = verr.Fields
		}

	case domain.KindNotFound:
		resp.Code = http.StatusNotFound
		resp.Message = notFoundMsg
		if resp.Message == "" {
			resp.Message = msgNotFound
		}

	case domain.KindAccessDenied:
		resp.Code = http.StatusForbidden
		resp.Message = msgForbidden

	case domain.KindConflict:
		resp.Code = http.StatusConflict
		resp.Message, resp.Conflict = conflictDetails(err)

	case domain.KindInvalidTransition:
		resp.Code = http.StatusUnprocessableEntity
		resp.Message = msgInvalidTransition
		var terr *domain.TransitionError
		if errors.As(err, &terr) {
			resp.Message = fmt.Sprintf("%s: %s %s -> %s", msgInvalidTransition, terr.Entity, terr.From, terr.To)
		}

	default:
		RespondInternalError(w)
		return
	}

	RespondJSON(w, resp.Code, resp)
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// DecodeOptionalJSON как DecodeJSON, но пустое тело не считается ошибкой
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func conflictDetails(err error) (string, *ConflictDetails) {
	var slotConflict *domain.SlotConflictError
	if errors.As(err, &slotConflict) {
		eventID := slotConflict.EventID
		return "слот пересекается с существующим слотом рекрутера", &ConflictDetails{
			SlotID:    slotConflict.SlotID,
			EventID:   &eventID,
			Date:      slotConflict.Date.Format(domain.DateFormat),
			StartTime: slotConflict.StartTime.String(),
			EndTime:   slotConflict.EndTime.String(),
		}
	}

	var bookingConflict *domain.BookingConflictError
	if errors.As(err, &bookingConflict) {
		return "слот уже забронирован другим кандидатом", &ConflictDetails{SlotID: bookingConflict.SlotID}
	}

	return msgConflict, nil
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.KindAccessDenied
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusConflict:
		return domain.KindConflict
	case http.StatusUnprocessableEntity:
		return domain.KindInvalidTransition
	default:
		return domain.KindInternal
	}
}
