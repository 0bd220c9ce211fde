package domain

import "strings"

// CropCategory selects the water-stress calibration curve for a crop.
type CropCategory string

const (
	CategoryCereal       CropCategory = "Cereal"
	CategoryCashCrop     CropCategory = "Cash Crop"
	CategoryPulse        CropCategory = "Pulse"
	CategoryVegetable    CropCategory = "Vegetable"
	CategoryHorticulture CropCategory = "Horticulture"
)

// CropProfile is an immutable catalog entry. Prices and costs are per acre
// and per ton in INR; water requirement is the full-season depth in mm.
type CropProfile struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Category           CropCategory `json:"category"`
	DurationDays       int          `json:"duration_days"`
	WaterRequirementMM float64      `json:"water_requirement_mm"`
	TempMinC           float64      `json:"temp_min_c"`
	TempMaxC           float64      `json:"temp_max_c"`
	BaseYieldTons      float64      `json:"base_yield_tons_per_acre"`
	BasePricePerTon    float64      `json:"base_price_per_ton"`
	BaseInputCost      float64      `json:"base_input_cost_per_acre"`
	Soils              []string     `json:"soils"`
	Zones              []string     `json:"zones"`
	Legume             bool         `json:"legume"`
}

// SupportsSoil reports whether the crop tolerates the given soil texture
// (case-insensitive). An empty soil type matches everything: soil is the one
// input the engine can work without when a farmer has not profiled it.
func (c CropProfile) SupportsSoil(soil string) bool {
	if strings.TrimSpace(soil) == "" {
		return true
	}
	for _, s := range c.Soils {
		if strings.EqualFold(s, soil) {
			return true
		}
	}
	return false
}

// SupportsZone reports whether the crop is grown in the given agro-climatic
// zone. Crops listing the "General" zone match any zone.
func (c CropProfile) SupportsZone(zone string) bool {
	for _, z := range c.Zones {
		if strings.EqualFold(z, zone) || strings.EqualFold(z, "General") {
			return true
		}
	}
	return false
}

// CropCatalog returns the built-in crop dataset, loaded once at process
// start and never mutated.
func CropCatalog() []CropProfile {
	return []CropProfile{
		{
			ID: "sugarcane", Name: "Sugarcane", Category: CategoryCashCrop,
			DurationDays: 365, WaterRequirementMM: 2200, TempMinC: 20, TempMaxC: 38,
			BaseYieldTons: 40, BasePricePerTon: 3400, BaseInputCost: 55000,
			Soils: []string{"Clay", "Black", "Loamy"},
			Zones: []string{"Western Maharashtra", "North Maharashtra"},
		},
		{
			ID: "rice", Name: "Rice (Paddy)", Category: CategoryCereal,
			DurationDays: 135, WaterRequirementMM: 1200, TempMinC: 20, TempMaxC: 37,
			BaseYieldTons: 2.5, BasePricePerTon: 22000, BaseInputCost: 25000,
			Soils: []string{"Clay", "Loamy"},
			Zones: []string{"Konkan", "General"},
		},
		{
			ID: "wheat", Name: "Wheat", Category: CategoryCereal,
			DurationDays: 120, WaterRequirementMM: 450, TempMinC: 10, TempMaxC: 25,
			BaseYieldTons: 1.8, BasePricePerTon: 23000, BaseInputCost: 18000,
			Soils: []string{"Loamy", "Clay", "Black"},
			Zones: []string{"General"},
		},
		{
			ID: "jowar", Name: "Jowar (Sorghum)", Category: CategoryCereal,
			DurationDays: 110, WaterRequirementMM: 350, TempMinC: 15, TempMaxC: 40,
			BaseYieldTons: 1.2, BasePricePerTon: 32000, BaseInputCost: 12000,
			Soils: []string{"Black", "Clay", "Medium", "Loamy"},
			Zones: []string{"Western Maharashtra", "Marathwada", "General"},
		},
		{
			ID: "bajra", Name: "Bajra (Pearl Millet)", Category: CategoryCereal,
			DurationDays: 90, WaterRequirementMM: 300, TempMinC: 20, TempMaxC: 42,
			BaseYieldTons: 1.0, BasePricePerTon: 25000, BaseInputCost: 10000,
			Soils: []string{"Sandy", "Loamy", "Medium"},
			Zones: []string{"Marathwada", "General"},
		},
		{
			ID: "gram", Name: "Gram (Chickpea)", Category: CategoryPulse,
			DurationDays: 105, WaterRequirementMM: 300, TempMinC: 10, TempMaxC: 30,
			BaseYieldTons: 0.9, BasePricePerTon: 54000, BaseInputCost: 14000,
			Soils: []string{"Black", "Clay", "Loamy"},
			Zones: []string{"Western Maharashtra", "Marathwada", "General"},
			Legume: true,
		},
		{
			ID: "soybean", Name: "Soybean", Category: CategoryPulse,
			DurationDays: 100, WaterRequirementMM: 450, TempMinC: 15, TempMaxC: 35,
			BaseYieldTons: 1.2, BasePricePerTon: 46000, BaseInputCost: 16000,
			Soils: []string{"Black", "Loamy", "Clay"},
			Zones: []string{"Vidarbha", "Western Maharashtra", "General"},
			Legume: true,
		},
		{
			ID: "cotton", Name: "Cotton", Category: CategoryCashCrop,
			DurationDays: 180, WaterRequirementMM: 700, TempMinC: 18, TempMaxC: 40,
			BaseYieldTons: 0.8, BasePricePerTon: 70000, BaseInputCost: 28000,
			Soils: []string{"Black", "Medium"},
			Zones: []string{"Vidarbha", "Marathwada", "General"},
		},
		{
			ID: "onion", Name: "Onion", Category: CategoryVegetable,
			DurationDays: 120, WaterRequirementMM: 500, TempMinC: 13, TempMaxC: 35,
			BaseYieldTons: 12, BasePricePerTon: 12000, BaseInputCost: 45000,
			Soils: []string{"Loamy", "Medium"},
			Zones: []string{"Western Maharashtra", "North Maharashtra", "General"},
		},
		{
			ID: "tomato", Name: "Tomato", Category: CategoryVegetable,
			DurationDays: 110, WaterRequirementMM: 600, TempMinC: 15, TempMaxC: 32,
			BaseYieldTons: 20, BasePricePerTon: 8000, BaseInputCost: 60000,
			Soils: []string{"Loamy", "Medium", "Sandy"},
			Zones: []string{"Western Maharashtra", "General"},
		},
		{
			ID: "pomegranate", Name: "Pomegranate", Category: CategoryHorticulture,
			DurationDays: 365, WaterRequirementMM: 800, TempMinC: 12, TempMaxC: 42,
			BaseYieldTons: 6, BasePricePerTon: 60000, BaseInputCost: 90000,
			Soils: []string{"Loamy", "Medium", "Sandy"},
			Zones: []string{"Western Maharashtra", "Marathwada", "General"},
		},
	}
}

// FindCrop locates a catalog crop by id or display name, case-insensitively.
// A miss returns false and callers fall back to neutral behavior; unmatched
// free-text intent is a resolution miss, not an error.
func FindCrop(catalog []CropProfile, idOrName string) (CropProfile, bool) {
	needle := strings.ToLower(strings.TrimSpace(idOrName))
	if needle == "" {
		return CropProfile{}, false
	}
	for _, c := range catalog {
		if strings.ToLower(c.ID) == needle || strings.ToLower(c.Name) == needle {
			return c, true
		}
	}
	// Second pass: prefix match on the display name so "rice" finds
	// "Rice (Paddy)".
	for _, c := range catalog {
		if strings.HasPrefix(strings.ToLower(c.Name), needle) {
			return c, true
		}
	}
	return CropProfile{}, false
}
