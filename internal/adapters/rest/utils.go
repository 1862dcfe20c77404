package rest

import (
	"encoding/json"
	"estate-agent-service/internal/core/domain"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// listingIDParam читает {listingID} из пути.
func listingIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "listingID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid listing id %q", raw)
	}
	return id, nil
}

// criteriaFromQuery строит критерии из query-параметров.
// Число, которое не разбирается, считается незаданным, как пустое поле формы.
func criteriaFromQuery(q url.Values) domain.SearchCriteria {
	return domain.SearchCriteria{
		Type:        domain.ListingType(strings.TrimSpace(q.Get("type"))),
		MinPrice:    optionalFloat(q.Get("minPrice")),
		MaxPrice:    optionalFloat(q.Get("maxPrice")),
		MinBedrooms: optionalInt(q.Get("minBedrooms")),
		MaxBedrooms: optionalInt(q.Get("maxBedrooms")),
		DateAdded:   strings.TrimSpace(q.Get("dateAdded")),
		Postcode:    q.Get("postcode"),
	}
}

func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
