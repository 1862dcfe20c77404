package rest

import (
	"encoding/json"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"estate-agent-service/internal/core/port/usecases_port"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

type FavouritesHandler struct {
	getUC    usecases_port.GetFavouritesUseCasePort
	checkUC  usecases_port.CheckFavouriteUseCasePort
	addUC    usecases_port.AddToFavouritesUseCasePort
	dropUC   usecases_port.DropToFavouritesUseCasePort
	removeUC usecases_port.RemoveFromFavouritesUseCasePort
	clearUC  usecases_port.ClearFavouritesUseCasePort
	toggleUC usecases_port.ToggleFavouriteUseCasePort
}

func NewFavouritesHandler(
	getUC usecases_port.GetFavouritesUseCasePort,
	checkUC usecases_port.CheckFavouriteUseCasePort,
	addUC usecases_port.AddToFavouritesUseCasePort,
	dropUC usecases_port.DropToFavouritesUseCasePort,
	removeUC usecases_port.RemoveFromFavouritesUseCasePort,
	clearUC usecases_port.ClearFavouritesUseCasePort,
	toggleUC usecases_port.ToggleFavouriteUseCasePort,
) *FavouritesHandler {
	return &FavouritesHandler{
		getUC:    getUC,
		checkUC:  checkUC,
		addUC:    addUC,
		dropUC:   dropUC,
		removeUC: removeUC,
		clearUC:  clearUC,
		toggleUC: toggleUC,
	}
}

// GetFavourites обрабатывает GET /api/v1/favourites
func (h *FavouritesHandler) GetFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavourites"})

	favourites, err := h.getUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get favourites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favourites")
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(favourites))
}

// CheckFavourite обрабатывает GET /api/v1/favourites/{listingID}
func (h *FavouritesHandler) CheckFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CheckFavourite"})

	id, err := listingIDParam(r)
	if err != nil {
		logger.Warn("Invalid listingID in URL", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	isFavourite, err := h.checkUC.Execute(r.Context(), id)
	if err != nil {
		logger.Error("Check favourite use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to check favourite")
		return
	}

	RespondWithJSON(w, http.StatusOK, FavouriteStatusResponse{ListingID: id, IsFavourite: isFavourite})
}

// AddToFavourites обрабатывает POST /api/v1/favourites
func (h *FavouritesHandler) AddToFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavourites"})

	var req AddFavouriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("Failed to decode request body for add favourite", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ListingID == nil {
		WriteJSONError(w, http.StatusBadRequest, "listing_id is required")
		return
	}

	favourites, err := h.addUC.Execute(r.Context(), *req.ListingID)
	if err != nil {
		writeUseCaseError(w, logger, "Add to favourites use case failed", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(favourites))
}

// DropToFavourites обрабатывает POST /api/v1/favourites/drop. Тело - сериализованный объект.
func (h *FavouritesHandler) DropToFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DropToFavourites"})

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn("Failed to read dropped payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	favourites, err := h.dropUC.Execute(r.Context(), payload)
	if err != nil {
		writeUseCaseError(w, logger, "Drop to favourites use case failed", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(favourites))
}

// ToggleFavourite обрабатывает POST /api/v1/favourites/{listingID}/toggle
func (h *FavouritesHandler) ToggleFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavourite"})

	id, err := listingIDParam(r)
	if err != nil {
		logger.Warn("Invalid listingID in URL", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	isFavourite, err := h.toggleUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, "Toggle favourite use case failed", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, FavouriteStatusResponse{ListingID: id, IsFavourite: isFavourite})
}

// RemoveFromFavourites обрабатывает DELETE /api/v1/favourites/{listingID}
func (h *FavouritesHandler) RemoveFromFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavourites"})

	id, err := listingIDParam(r)
	if err != nil {
		logger.Warn("Invalid listingID in URL", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	if err := h.removeUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, "Remove from favourites use case failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearFavourites обрабатывает DELETE /api/v1/favourites
func (h *FavouritesHandler) ClearFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ClearFavourites"})

	if err := h.clearUC.Execute(r.Context()); err != nil {
		writeUseCaseError(w, logger, "Clear favourites use case failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeUseCaseError переводит доменные ошибки в HTTP-статусы.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		logger.Info(msg, port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, domain.ErrInvalidPayload):
		logger.Warn(msg, port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(msg, err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to update favourites")
	}
}
