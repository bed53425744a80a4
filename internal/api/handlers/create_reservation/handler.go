package create_reservation

import (
	"errors"
	"net/http"

	"github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers"
	"github.com/mairie-chartrettes/SalleReservationService/internal/api/middleware"
	createReservation "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidDate        = "format de date invalide, attendu AAAA-MM-JJ"
	msgMissingUserID      = "identifiant utilisateur manquant"
	msgSlotConflict       = "les créneaux demandés ne sont plus disponibles"
	msgPastDate           = "la date demandée est déjà passée"
	msgAdvanceNotice      = "la date demandée est trop proche, le délai de prévenance n'est pas respecté"
	msgMissingAssociation = "aucune association de facturation n'est associée à votre compte"
	msgMissingTariff      = "aucun tarif n'est défini pour cette durée de location"
	msgRoomNotFound       = "salle introuvable"
	msgUserNotFound       = "utilisateur introuvable"
	msgInvalidInput       = "données de réservation invalides"
)

// Handler serves the two reservation submission entry points. The
// standard flow and the quick-booking flow differ only in the
// advance-notice window they pass to the usecase.
type Handler struct {
	useCase             CreateReservationUseCase
	logger              Logger
	minAdvanceDays      int
	quickMinAdvanceDays int
}

func NewHandler(useCase CreateReservationUseCase, logger Logger, minAdvanceDays, quickMinAdvanceDays int) *Handler {
	return &Handler{
		useCase:             useCase,
		logger:              logger,
		minAdvanceDays:      minAdvanceDays,
		quickMinAdvanceDays: quickMinAdvanceDays,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.minAdvanceDays)
}

// HandleQuick POST /api/v1/reservations/quick
func (h *Handler) HandleQuick(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.quickMinAdvanceDays)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, minAdvanceDays int) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID, minAdvanceDays)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, room_id=%d, date=%s",
				requesterID, req.RoomID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrPastDate):
			h.logger.Warn("POST /reservations - Past date: user_id=%d, date=%s", requesterID, req.Date)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPastDate)

		case errors.Is(err, createReservation.ErrAdvanceNotice):
			h.logger.Warn("POST /reservations - Advance notice violated: user_id=%d, date=%s, window=%dd",
				requesterID, req.Date, minAdvanceDays)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgAdvanceNotice)

		case errors.Is(err, createReservation.ErrMissingAssociation):
			h.logger.Warn("POST /reservations - Missing billing association: user_id=%d", requesterID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingAssociation)

		case errors.Is(err, createReservation.ErrMissingTariff):
			h.logger.Warn("POST /reservations - Missing tariff: room_id=%d", req.RoomID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingTariff)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", requesterID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, room_id=%d, error=%v",
				requesterID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, user_id=%d, room_id=%d, status=%s",
		result.ID, requesterID, req.RoomID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
