package get_room_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers"
	"github.com/mairie-chartrettes/SalleReservationService/internal/api/middleware"
	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/reservations"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/reservations/models"
)

const (
	msgInvalidRoomID = "identifiant de salle invalide"
	msgInvalidDate   = "format de date invalide, attendu AAAA-MM-JJ"
	msgMissingUserID = "identifiant utilisateur manquant"
	msgForbidden     = "accès réservé au personnel de la mairie"
	msgRoomNotFound  = "salle introuvable"
	msgInvalidStatus = "statut de filtrage invalide"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/reservations?startDate=&endDate=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetRoomReservationsRequest{
		RoomID:   roomID,
		CallerID: callerID,
	}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/reservations - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}
	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/reservations - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetRoomReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /rooms/{id}/reservations - Access denied: room_id=%d, user_id=%d",
				roomID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/reservations - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/reservations - Invalid status filter: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /rooms/{id}/reservations - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/reservations - Retrieved %d reservations: room_id=%d",
		len(result.Reservations), roomID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
