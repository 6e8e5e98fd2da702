package seed

import "github.com/wichananm65/skincare-backend/internal/product"

// SampleProducts is the starter catalog used for local development.
func SampleProducts() []product.Product {
	return []product.Product{
		{
			Name:         "Gentle Foaming Cleanser",
			Brand:        "CeraVe",
			Category:     "Cleanser",
			SkinType:     "Normal,Oily,Dry",
			Concerns:     "Daily cleansing,Sensitive skin",
			Price:        12.99,
			Rating:       4.5,
			Description:  "A gentle, non-comedogenic foaming facial cleanser that removes makeup and dirt without over-drying the skin. Contains essential ceramides and hyaluronic acid.",
			Ingredients:  "Ceramides, Hyaluronic Acid, Niacinamide, MVE Technology",
			PurchaseLink: "https://www.cerave.com/skincare/cleansers/foaming-facial-cleanser",
			ImageURL:     "https://via.placeholder.com/300x400?text=CeraVe+Cleanser&bg=4A90E2&color=white",
		},
		{
			Name:         "2% BHA Liquid Exfoliant",
			Brand:        "Paula's Choice",
			Category:     "Treatment",
			SkinType:     "Oily,Normal",
			Concerns:     "Acne,Blackheads,Large pores,Texture",
			Price:        32.00,
			Rating:       4.7,
			Description:  "Powerful 2% BHA (Salicylic Acid) liquid exfoliant that unclogs pores, reduces blackheads, and smooths skin texture for a clearer complexion.",
			Ingredients:  "Salicylic Acid, Green Tea Extract, Methylpropanediol",
			PurchaseLink: "https://www.paulaschoice.com/skin-perfecting-2pct-bha-liquid-exfoliant/201.html",
			ImageURL:     "https://via.placeholder.com/300x400?text=Paula+BHA&bg=E74C3C&color=white",
		},
		{
			Name:         "Hyaluronic Acid 2% + B5",
			Brand:        "The Ordinary",
			Category:     "Serum",
			SkinType:     "Normal,Dry,Oily",
			Concerns:     "Dehydration,Fine lines,Plumping",
			Price:        8.90,
			Rating:       4.3,
			Description:  "Multi-molecular hyaluronic acid serum for intensive hydration at multiple skin depths. Provides long-lasting moisture retention.",
			Ingredients:  "Sodium Hyaluronate, Hyaluronic Acid, Vitamin B5",
			PurchaseLink: "https://theordinary.com/en-us/hyaluronic-acid-2-b5-serum-30ml",
			ImageURL:     "https://via.placeholder.com/300x400?text=TO+Hyaluronic&bg=8E44AD&color=white",
		},
		{
			Name:         "Rapid Wrinkle Repair Retinol",
			Brand:        "Neutrogena",
			Category:     "Treatment",
			SkinType:     "Normal,Oily",
			Concerns:     "Anti-aging,Acne,Fine lines,Texture",
			Price:        18.99,
			Rating:       4.2,
			Description:  "Anti-aging night treatment with retinol SA to accelerate skin renewal and reduce the appearance of fine lines and wrinkles.",
			Ingredients:  "Retinol SA, Hyaluronic Acid, Glucose Complex",
			PurchaseLink: "https://www.neutrogena.com/products/skincare/rapid-wrinkle-repair",
			ImageURL:     "https://via.placeholder.com/300x400?text=Neutrogena+Retinol&bg=F39C12&color=white",
		},
		{
			Name:         "Anthelios Ultra Light SPF 60",
			Brand:        "La Roche-Posay",
			Category:     "Sunscreen",
			SkinType:     "Normal,Oily,Dry",
			Concerns:     "Sun protection,Daily protection",
			Price:        26.99,
			Rating:       4.6,
			Description:  "Lightweight, non-greasy broad spectrum sunscreen with SPF 60. Fast-absorbing formula with antioxidant protection.",
			Ingredients:  "Avobenzone, Homosalate, Octisalate, Octocrylene, Antioxidants",
			PurchaseLink: "https://www.laroche-posay.us/anthelios-ultra-light-sunscreen-fluid",
			ImageURL:     "https://via.placeholder.com/300x400?text=LRP+SPF60&bg=27AE60&color=white",
		},
		{
			Name:         "Moisturizing Cream",
			Brand:        "CeraVe",
			Category:     "Moisturizer",
			SkinType:     "Dry,Normal",
			Concerns:     "Hydration,Dry skin,Barrier repair",
			Price:        16.99,
			Rating:       4.4,
			Description:  "Rich, non-greasy moisturizer with ceramides and MVE technology for 24-hour hydration and skin barrier restoration.",
			Ingredients:  "Ceramides 1, 3, 6-II, Hyaluronic Acid, MVE Technology",
			PurchaseLink: "https://www.cerave.com/skincare/moisturizers/moisturizing-cream",
			ImageURL:     "https://via.placeholder.com/300x400?text=CeraVe+Cream&bg=3498DB&color=white",
		},
		{
			Name:         "Niacinamide 10% + Zinc 1%",
			Brand:        "The Ordinary",
			Category:     "Serum",
			SkinType:     "Oily,Normal",
			Concerns:     "Acne,Large pores,Oil control,Blemishes",
			Price:        7.90,
			Rating:       4.1,
			Description:  "High-strength niacinamide serum to reduce appearance of skin blemishes and congestion. Controls oil production effectively.",
			Ingredients:  "Niacinamide, Zinc PCA, Tamarindus Indica Seed Gum",
			PurchaseLink: "https://theordinary.com/en-us/niacinamide-10pct-zinc-1pct-serum",
			ImageURL:     "https://via.placeholder.com/300x400?text=TO+Niacinamide&bg=9B59B6&color=white",
		},
		{
			Name:         "Hydrating Facial Cleanser",
			Brand:        "CeraVe",
			Category:     "Cleanser",
			SkinType:     "Dry,Normal",
			Concerns:     "Gentle cleansing,Hydration,Sensitive skin",
			Price:        11.99,
			Rating:       4.6,
			Description:  "Non-foaming cream cleanser that removes dirt and makeup while maintaining the skin's natural protective barrier.",
			Ingredients:  "Ceramides, Hyaluronic Acid, MVE Technology",
			PurchaseLink: "https://www.cerave.com/skincare/cleansers/hydrating-facial-cleanser",
			ImageURL:     "https://via.placeholder.com/300x400?text=CeraVe+Hydrating&bg=16A085&color=white",
		},
		{
			Name:         "Vitamin C 23% + HA Spheres 2%",
			Brand:        "The Ordinary",
			Category:     "Serum",
			SkinType:     "Normal,Oily",
			Concerns:     "Anti-aging,Dark spots,Brightening",
			Price:        9.10,
			Rating:       4.0,
			Description:  "High-strength vitamin C serum for advanced signs of aging. Helps brighten skin and reduce dark spots.",
			Ingredients:  "L-Ascorbic Acid, Sodium Hyaluronate Spheres",
			PurchaseLink: "https://theordinary.com/en-us/vitamin-c-23pct-ha-spheres-2pct-serum",
			ImageURL:     "https://via.placeholder.com/300x400?text=TO+Vitamin+C&bg=E67E22&color=white",
		},
		{
			Name:         "Oil-Free Acne Wash",
			Brand:        "Neutrogena",
			Category:     "Cleanser",
			SkinType:     "Oily",
			Concerns:     "Acne,Oil control,Deep cleansing",
			Price:        8.99,
			Rating:       4.3,
			Description:  "Oil-free acne fighting face wash with salicylic acid. Clears breakouts without over-drying skin.",
			Ingredients:  "Salicylic Acid, Glycerin, Cocamidopropyl Betaine",
			PurchaseLink: "https://www.neutrogena.com/products/skincare/oil-free-acne-wash",
			ImageURL:     "https://via.placeholder.com/300x400?text=Neutrogena+Acne&bg=C0392B&color=white",
		},
		{
			Name:         "Toleriane Double Repair Moisturizer",
			Brand:        "La Roche-Posay",
			Category:     "Moisturizer",
			SkinType:     "Normal,Dry,Sensitive",
			Concerns:     "Hydration,Sensitive skin,Barrier repair",
			Price:        19.99,
			Rating:       4.5,
			Description:  "Face moisturizer with ceramides and niacinamide. Restores healthy-looking skin and provides 48-hour hydration.",
			Ingredients:  "Ceramides, Niacinamide, Thermal Spring Water",
			PurchaseLink: "https://www.laroche-posay.us/toleriane-double-repair-face-moisturizer",
			ImageURL:     "https://via.placeholder.com/300x400?text=LRP+Moisturizer&bg=2ECC71&color=white",
		},
		{
			Name:         "Retinol 1% in Squalane",
			Brand:        "The Ordinary",
			Category:     "Treatment",
			SkinType:     "Normal,Dry",
			Concerns:     "Anti-aging,Fine lines,Texture",
			Price:        9.90,
			Rating:       4.2,
			Description:  "High-strength retinol serum in squalane base for advanced signs of aging. Promotes skin renewal and smoothness.",
			Ingredients:  "Retinol, Squalane",
			PurchaseLink: "https://theordinary.com/en-us/retinol-1pct-in-squalane-serum",
			ImageURL:     "https://via.placeholder.com/300x400?text=TO+Retinol&bg=8B008B&color=white",
		},
	}
}
