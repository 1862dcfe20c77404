package domain

// ListingType - категория объекта недвижимости.
type ListingType string

const (
	ListingTypeHouse ListingType = "house"
	ListingTypeFlat  ListingType = "flat"
)

// AllListingTypes - фиксированный список категорий в порядке отображения в форме поиска.
var AllListingTypes = []ListingType{ListingTypeHouse, ListingTypeFlat}

func (t ListingType) IsValid() bool {
	switch t {
	case ListingTypeHouse, ListingTypeFlat:
		return true
	}
	return false
}

// Listing - объект из каталога. Загружается один раз при старте и больше не изменяется.
// JSON-теги совпадают с форматом исходного набора данных и сохраненного избранного.
type Listing struct {
	ID               int         `json:"id"`
	Type             ListingType `json:"type"`
	Price            float64     `json:"price"`
	Bedrooms         int         `json:"bedrooms"`
	DateAdded        string      `json:"dateAdded"` // YYYY-MM-DD
	Postcode         string      `json:"postcode"`
	ShortDescription string      `json:"shortDescription"`
	LongDescription  string      `json:"longDescription"`
	Images           []string    `json:"images"`
	FloorPlan        string      `json:"floorPlan"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
}

// MainImage возвращает первое изображение галереи или пустую строку.
func (l Listing) MainImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// Clone возвращает копию объекта, не разделяющую срез Images с оригиналом.
func (l Listing) Clone() Listing {
	if l.Images != nil {
		l.Images = append([]string(nil), l.Images...)
	}
	return l
}

// CloneListings копирует срез объектов вместе с их галереями.
func CloneListings(items []Listing) []Listing {
	result := make([]Listing, len(items))
	for i, item := range items {
		result[i] = item.Clone()
	}
	return result
}
