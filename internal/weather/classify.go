package weather

// Category is a display bucket for an OpenWeather condition code.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryThunderstorm
	CategoryDrizzle
	CategoryRain
	CategorySnow
	CategoryAtmosphere
	CategoryClear
	CategoryCloudy
)

var categoryNames = map[Category]string{
	CategoryUnknown:      "unknown",
	CategoryThunderstorm: "thunderstorm",
	CategoryDrizzle:      "drizzle",
	CategoryRain:         "rain",
	CategorySnow:         "snow",
	CategoryAtmosphere:   "atmosphere",
	CategoryClear:        "clear",
	CategoryCloudy:       "cloudy",
}

var categoryGlyphs = map[Category]string{
	CategoryUnknown:      "🌈",
	CategoryThunderstorm: "💥",
	CategoryDrizzle:      "💧",
	CategoryRain:         "💦",
	CategorySnow:         "⛄️",
	CategoryAtmosphere:   "🌀",
	CategoryClear:        "🔆",
	CategoryCloudy:       "💨",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// Glyph returns the symbol printed next to the city name.
func (c Category) Glyph() string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return categoryGlyphs[CategoryUnknown]
}

// codeRange is a half-open interval [lo, hi).
type codeRange struct {
	lo, hi   int
	category Category
}

// Codes 400-499 and 900+ are reserved by the provider and stay Unknown.
var codeRanges = []codeRange{
	{200, 300, CategoryThunderstorm},
	{300, 400, CategoryDrizzle},
	{500, 600, CategoryRain},
	{600, 700, CategorySnow},
	{700, 800, CategoryAtmosphere},
	{800, 801, CategoryClear},
	{801, 900, CategoryCloudy},
}

// Classify maps a condition code to its Category. It never fails.
func Classify(code int) Category {
	for _, r := range codeRanges {
		if code >= r.lo && code < r.hi {
			return r.category
		}
	}
	return CategoryUnknown
}
