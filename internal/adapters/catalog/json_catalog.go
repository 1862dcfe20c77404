package catalog

import (
	"context"
	"encoding/json"
	"estate-agent-service/internal/contracts"
	"estate-agent-service/internal/core/domain"
	"fmt"
)

// JSONCatalog - неизменяемый каталог объектов, загруженный один раз при старте.
type JSONCatalog struct {
	listings []domain.Listing
	byID     map[int]int
}

// NewJSONCatalog разбирает JSON-массив объектов. Каждый объект проверяется по схеме,
// повторяющийся id считается ошибкой данных.
func NewJSONCatalog(data []byte) (*JSONCatalog, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("listing dataset is not a JSON array: %w", err)
	}

	c := &JSONCatalog{
		listings: make([]domain.Listing, 0, len(records)),
		byID:     make(map[int]int, len(records)),
	}
	for i, raw := range records {
		listing, err := contracts.ParseListing(raw)
		if err != nil {
			return nil, fmt.Errorf("listing #%d: %w", i, err)
		}
		if _, exists := c.byID[listing.ID]; exists {
			return nil, fmt.Errorf("listing #%d: duplicate id %d", i, listing.ID)
		}
		c.byID[listing.ID] = len(c.listings)
		c.listings = append(c.listings, listing)
	}
	return c, nil
}

func (c *JSONCatalog) All(ctx context.Context) []domain.Listing {
	return domain.CloneListings(c.listings)
}

func (c *JSONCatalog) FindByID(ctx context.Context, id int) (domain.Listing, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Listing{}, fmt.Errorf("listing %d: %w", id, domain.ErrListingNotFound)
	}
	return c.listings[idx].Clone(), nil
}

func (c *JSONCatalog) Len() int {
	return len(c.listings)
}
