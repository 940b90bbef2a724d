package catalog

import "github.com/nhle/taskshop/internal/model"

// Seed returns the built-in product set. Prices are in rupiah.
func Seed() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Headphone Premium",
			Price:       2_999_900,
			Description: "Headphone nirkabel dengan fitur peredam bising",
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=500",
		},
		{
			ID:          "2",
			Name:        "Smartwatch",
			Price:       1_999_900,
			Description: "Pemantauan kebugaran & monitor detak jantung",
			Category:    "Wearables",
			Image:       "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?w=500",
		},
		{
			ID:          "3",
			Name:        "Wireless Speaker",
			Price:       1_499_900,
			Description: "Speaker portabel dengan suara surround 360°",
			Category:    "Audio",
			Image:       "https://images.unsplash.com/photo-1618275648002-9758fc97dbf5?w=500",
		},
		{
			ID:          "4",
			Name:        "Book Light",
			Price:       349_900,
			Description: "Lampu baca portabel dengan pengaturan kecerahan",
			Category:    "Reading",
			Image:       "https://plus.unsplash.com/premium_photo-1681223965823-bab3eba5b18c?w=500",
		},
		{
			ID:          "5",
			Name:        "Mouse Gaming",
			Price:       799_900,
			Description: "Mouse gaming dengan RGB dan 6 tombol",
			Category:    "Gaming",
			Image:       "https://images.unsplash.com/photo-1594008671689-8d8b9480cae8?w=500",
		},
		{
			ID:          "6",
			Name:        "Mechanical Keyboard",
			Price:       1_099_900,
			Description: "Keyboard RGB dengan sakelar Cherry MX",
			Category:    "Gaming",
			Image:       "https://images.unsplash.com/photo-1602025882379-e01cf08baa51?w=500",
		},
	}
}
