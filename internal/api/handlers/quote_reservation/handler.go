package quote_reservation

import (
	"errors"
	"net/http"

	"github.com/mairie-chartrettes/SalleReservationService/internal/api/handlers"
	"github.com/mairie-chartrettes/SalleReservationService/internal/api/middleware"
	quoteReservation "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/quote_reservation"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidTime        = "format d'horaire invalide, attendu HH:MM"
	msgMissingUserID      = "identifiant utilisateur manquant"
	msgMissingTariff      = "aucun tarif n'est défini pour cette durée de location"
	msgRoomNotFound       = "salle introuvable"
	msgUserNotFound       = "utilisateur introuvable"
	msgInvalidInput       = "données de devis invalides"
)

type Handler struct {
	useCase QuoteReservationUseCase
	logger  Logger
}

func NewHandler(useCase QuoteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /reservations/quote - Failed to parse slots: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteReservation.ErrMissingTariff):
			h.logger.Warn("POST /reservations/quote - Missing tariff: room_id=%d", req.RoomID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingTariff)

		case errors.Is(err, quoteReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/quote - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, quoteReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations/quote - User not found: user_id=%d", requesterID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, quoteReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/quote - Invalid input: user_id=%d, error=%v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/quote - Failed to compute quote: user_id=%d, room_id=%d, error=%v",
				requesterID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/quote - Quote computed: user_id=%d, room_id=%d, total=%.2f",
		requesterID, req.RoomID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
