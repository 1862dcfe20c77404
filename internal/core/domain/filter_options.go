package domain

// Значения для формы поиска
const (
	BedroomsSliderMin = 0
	BedroomsSliderMax = 10
)

// PriceSteps - варианты для выпадающих списков минимальной и максимальной цены.
var PriceSteps = []float64{
	0, 100000, 150000, 200000, 250000, 300000, 350000,
	400000, 450000, 500000, 550000, 600000, 650000,
}

type FloatRange struct{ Min, Max float64 }

type IntRange struct{ Min, Max int }

// FilterOptions - все, что нужно фронтенду, чтобы построить форму поиска.
type FilterOptions struct {
	Types          []ListingType
	Postcodes      []string
	PriceSteps     []float64
	BedroomsSlider IntRange

	// Фактические границы по каталогу
	PriceRange    FloatRange
	BedroomsRange IntRange
	Count         int
}
