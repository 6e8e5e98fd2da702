package analysis

type Routine struct {
	SkinType string   `json:"skin_type"`
	Morning  []string `json:"morning"`
	Evening  []string `json:"evening"`
}

var eveningSteps = map[string][]string{
	"Oily":   {"Oil Cleanser", "Foaming Cleanser", "BHA Exfoliant", "Niacinamide Serum", "Oil-Free Moisturizer"},
	"Dry":    {"Cream Cleanser", "Hydrating Toner", "Hyaluronic Acid Serum", "Rich Night Cream"},
	"Normal": {"Gentle Cleanser", "Retinol Serum", "Night Moisturizer"},
}

// RoutineFor suggests a routine for a skin type. Unknown or blank types get
// the Normal routine.
func RoutineFor(skinType string) Routine {
	evening, ok := eveningSteps[skinType]
	if !ok {
		skinType = "Normal"
		evening = eveningSteps[skinType]
	}
	return Routine{
		SkinType: skinType,
		Morning:  []string{"Gentle Cleanser", "Vitamin C Serum", "Moisturizer", "Sunscreen"},
		Evening:  append([]string(nil), evening...),
	}
}
