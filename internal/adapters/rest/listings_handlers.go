package rest

import (
	"encoding/json"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"estate-agent-service/internal/core/port/usecases_port"
	"net/http"
)

type ListingsHandler struct {
	searchUC  usecases_port.SearchListingsUseCasePort
	detailsUC usecases_port.GetListingDetailsUseCasePort
	optionsUC usecases_port.GetFilterOptionsUseCasePort
}

func NewListingsHandler(
	searchUC usecases_port.SearchListingsUseCasePort,
	detailsUC usecases_port.GetListingDetailsUseCasePort,
	optionsUC usecases_port.GetFilterOptionsUseCasePort,
) *ListingsHandler {
	return &ListingsHandler{
		searchUC:  searchUC,
		detailsUC: detailsUC,
		optionsUC: optionsUC,
	}
}

// SearchListings обрабатывает GET /api/v1/listings
func (h *ListingsHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, criteriaFromQuery(r.URL.Query()))
}

// SearchListingsByBody обрабатывает POST /api/v1/listings/search. Пустой объект - сброс фильтра.
func (h *ListingsHandler) SearchListingsByBody(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchListingsByBody"})

	var req SearchCriteriaRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("Failed to decode search criteria", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.search(w, r, req.toDomain())
}

func (h *ListingsHandler) search(w http.ResponseWriter, r *http.Request, criteria domain.SearchCriteria) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchListings"})

	listings, err := h.searchUC.Execute(r.Context(), criteria)
	if err != nil {
		logger.Error("Search listings use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search listings")
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingsResponse(listings))
}

// GetListingDetails обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingsHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingDetails"})

	id, err := listingIDParam(r)
	if err != nil {
		logger.Warn("Invalid listingID in URL", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	listing, err := h.detailsUC.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("Get listing details use case failed", err, port.Fields{"listing_id": id})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, newListingDetailsResponse(*listing))
}

// GetFilterOptions обрабатывает GET /api/v1/filters/options
func (h *ListingsHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFilterOptions"})

	options, err := h.optionsUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get filter options use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get filter options")
		return
	}

	RespondWithJSON(w, http.StatusOK, newFilterOptionsResponse(options))
}
