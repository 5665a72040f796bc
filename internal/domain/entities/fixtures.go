package entities

import (
	"time"
)

// SampleBusinesses is the local bootstrap set used by the directory
// listing when the record store cannot be reached, and by the seed
// command. Categories hold the canonical slug, not the display name.
func SampleBusinesses() []*Business {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	return []*Business{
		{
			ID:          "1",
			OwnerID:     "owner1",
			Name:        "Restaurante El Criollo",
			Slug:        "restaurante-el-criollo",
			Category:    "restaurantes",
			City:        "Barcelona",
			Description: "El auténtico sabor dominicano en el corazón de Barcelona.",
			Address:     "Carrer de Trafalgar, 45, Barcelona",
			Phone:       "934 12 34 56",
			Images:      []string{"https://images.unsplash.com/photo-1514361892635-6b07e31e75f9?q=80&w=800&auto=format&fit=crop"},
			IsPremium:   true,
			IsApproved:  true,
			IsFeatured:  true,
			Views:       1250,
			Clicks:      340,
			RatingAvg:   4.8,
			RatingCount: 56,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "2",
			OwnerID:     "owner2",
			Name:        "Colmado La Bendición",
			Slug:        "colmado-la-bendicion",
			Category:    "colmados",
			City:        "Barcelona",
			Description: "Todos los productos de nuestra tierra.",
			Address:     "Carrer de la Unió, 12, Barcelona",
			Phone:       "931 22 33 44",
			Images:      []string{"https://images.unsplash.com/photo-1542838132-92c53300491e?q=80&w=800&auto=format&fit=crop"},
			IsApproved:  true,
			Views:       890,
			Clicks:      210,
			RatingAvg:   4.5,
			RatingCount: 32,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "3",
			OwnerID:     "owner3",
			Name:        "Peluquería Estilo Dominicano",
			Slug:        "peluqueria-estilo-dominicano",
			Category:    "belleza",
			City:        "Barcelona",
			Description: "Especialistas en cortes dominicanos.",
			Address:     "Avinguda del Paral·lel, 120, Barcelona",
			Phone:       "933 44 55 66",
			Images:      []string{"https://images.unsplash.com/photo-1560066984-138dadb4c035?q=80&w=800&auto=format&fit=crop"},
			IsPremium:   true,
			IsApproved:  true,
			Views:       740,
			Clicks:      180,
			RatingAvg:   4.9,
			RatingCount: 45,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "4",
			OwnerID:     "owner4",
			Name:        "Gestoría Dominicana Barna",
			Slug:        "gestoria-dominicana-barna",
			Category:    "servicios",
			City:        "Barcelona",
			Description: "Trámites de extranjería y renovación de pasaportes.",
			Address:     "Gran Via de les Corts Catalanes, 600, Barcelona",
			Phone:       "932 11 22 33",
			Images:      []string{"https://images.unsplash.com/photo-1454165833767-027ffea7028c?q=80&w=800&auto=format&fit=crop"},
			IsApproved:  true,
			Views:       320,
			Clicks:      85,
			RatingAvg:   4.2,
			RatingCount: 12,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}
