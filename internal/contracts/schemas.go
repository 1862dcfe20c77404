package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"estate-agent-service/internal/core/domain"
	"estate-agent-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ListingSchema        = "Listing"
	ListingSchemaVersion = "1.0.0"

	FavouritesChangedEventType    = "FavouritesChangedEvent"
	FavouritesChangedEventVersion = "1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	// Сначала регистрируем все файлы как ресурсы, чтобы работали $ref между схемами
	err := fs.WalkDir(schemas.SchemasFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		raw, err := fs.ReadFile(schemas.SchemasFS, path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[keyFromPath(path)] = schema
	}
}

// keyFromPath: "listing/v1.json" -> "Listing/1.0.0",
// "events/favourites-changed/v1.json" -> "FavouritesChangedEvent/1.0.0".
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(path, ".json")
	suffix := ""
	if strings.HasPrefix(trimmed, "events/") {
		trimmed = strings.TrimPrefix(trimmed, "events/")
		suffix = "Event"
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return name.String() + "/" + version
}

// Validate проверяет тело по зарегистрированной схеме name/version.
func Validate(name, version string, body []byte) error {
	schema, ok := compiledSchemas[name+"/"+version]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	v, err := decodeJSON(body)
	if err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateListing проверяет недоверенный JSON объекта недвижимости.
func ValidateListing(body []byte) error {
	if err := Validate(ListingSchema, ListingSchemaVersion, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return nil
}

// ParseListing валидирует и разбирает объект.
func ParseListing(body []byte) (domain.Listing, error) {
	if err := ValidateListing(body); err != nil {
		return domain.Listing{}, err
	}

	var listing domain.Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return listing, nil
}

// decodeJSON разбирает ровно одно JSON-значение, числа остаются json.Number.
func decodeJSON(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}
