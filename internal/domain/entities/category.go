package entities

import "strings"

// Category is a fixed enumeration entry. Categories are static
// configuration, never created or mutated at runtime. Slugs are the
// canonical filter key because they are persisted in shareable URLs.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// Categories is the closed, ordered set of valid business categories.
var Categories = []Category{
	{ID: "1", Name: "Restaurantes", Icon: "🍽️", Slug: "restaurantes", Color: "#ef4444"},
	{ID: "2", Name: "Colmados", Icon: "🛒", Slug: "colmados", Color: "#f97316"},
	{ID: "3", Name: "Fruterías", Icon: "🍊", Slug: "fruterias", Color: "#eab308"},
	{ID: "4", Name: "Ropa y Moda", Icon: "👗", Slug: "ropa", Color: "#a855f7"},
	{ID: "5", Name: "Cosméticos", Icon: "💄", Slug: "cosmeticos", Color: "#ec4899"},
	{ID: "6", Name: "Hogar", Icon: "🏠", Slug: "hogar", Color: "#06b6d4"},
	{ID: "7", Name: "Envíos", Icon: "📦", Slug: "envios", Color: "#3b82f6"},
	{ID: "8", Name: "Belleza", Icon: "💇", Slug: "belleza", Color: "#f43f5e"},
	{ID: "9", Name: "Servicios Pro", Icon: "💼", Slug: "servicios", Color: "#10b981"},
	{ID: "10", Name: "Asociaciones", Icon: "🤝", Slug: "asociaciones", Color: "#002D62"},
	{ID: "11", Name: "Negocios Online", Icon: "🌐", Slug: "online", Color: "#8b5cf6"},
	{ID: "12", Name: "Otros", Icon: "✨", Slug: "otros", Color: "#6b7280"},
}

// Cities is the ordered list of supported city names. The last entry
// covers online-only businesses.
var Cities = []string{
	"Barcelona",
	"Madrid",
	"Valencia",
	"Sevilla",
	"Zaragoza",
	"Digital / Toda España",
}

// CategoryBySlug returns the category for a slug, matching
// case-insensitively. The second return is false for unknown slugs;
// filtering by an unknown slug yields zero matches, never an error.
func CategoryBySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c.Slug, slug) {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategorySlug reports whether slug names a known category
func ValidCategorySlug(slug string) bool {
	_, ok := CategoryBySlug(slug)
	return ok
}

// CanonicalCity returns the canonically cased city name, matching
// case-insensitively. The second return is false for unsupported
// cities.
func CanonicalCity(name string) (string, bool) {
	for _, c := range Cities {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// ValidCity reports whether name is one of the supported cities
func ValidCity(name string) bool {
	_, ok := CanonicalCity(name)
	return ok
}
