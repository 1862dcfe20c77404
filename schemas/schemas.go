package schemas

import "embed"

// SchemasFS содержит JSON-схемы объектов и событий.
//
//go:embed listing/*.json events/*/*.json
var SchemasFS embed.FS

// DefaultListings - каталог по умолчанию, если LISTINGS_SOURCE не задан.
//
//go:embed data/properties.json
var DefaultListings []byte
