package domain

import "strings"

// Classification is the CGWB groundwater stress tier for a block.
type Classification string

const (
	ClassificationSafe          Classification = "Safe"
	ClassificationSemiCritical  Classification = "Semi-critical"
	ClassificationCritical      Classification = "Critical"
	ClassificationOverExploited Classification = "Over-exploited"
	ClassificationUnknown       Classification = "Unknown"
)

// ParseClassification normalizes a free-text classification string.
// Unrecognized values map to Unknown.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return ClassificationSafe
	case "semi-critical", "semi critical", "semicritical":
		return ClassificationSemiCritical
	case "critical":
		return ClassificationCritical
	case "over-exploited", "over exploited", "overexploited":
		return ClassificationOverExploited
	default:
		return ClassificationUnknown
	}
}

// BlockRecord is one administrative block in the static spatial catalog.
type BlockRecord struct {
	Pincode          string         `json:"pincode"`
	District         string         `json:"district"`
	Block            string         `json:"block"`
	State            string         `json:"state"`
	Lat              float64        `json:"lat"`
	Lon              float64        `json:"lon"`
	Classification   Classification `json:"classification"`
	WaterTableDepthM float64        `json:"water_table_depth_m"`
}

// BlockCatalog returns the built-in block dataset. Classifications and depths
// are calibration values taken from published CGWB district summaries, not a
// live feed; the groundwater status provider refreshes them when a live
// source is configured.
func BlockCatalog() []BlockRecord {
	return []BlockRecord{
		{Pincode: "411001", District: "Pune", Block: "Pune City", State: "Maharashtra", Lat: 18.5204, Lon: 73.8567, Classification: ClassificationSemiCritical, WaterTableDepthM: 15},
		{Pincode: "412306", District: "Pune", Block: "Baramati", State: "Maharashtra", Lat: 18.1514, Lon: 74.5775, Classification: ClassificationOverExploited, WaterTableDepthM: 32},
		{Pincode: "412203", District: "Pune", Block: "Daund", State: "Maharashtra", Lat: 18.4648, Lon: 74.5815, Classification: ClassificationCritical, WaterTableDepthM: 25},
		{Pincode: "413106", District: "Pune", Block: "Indapur", State: "Maharashtra", Lat: 18.1230, Lon: 75.0204, Classification: ClassificationOverExploited, WaterTableDepthM: 30},
		{Pincode: "413001", District: "Solapur", Block: "Solapur North", State: "Maharashtra", Lat: 17.6599, Lon: 75.9064, Classification: ClassificationCritical, WaterTableDepthM: 24},
		{Pincode: "413709", District: "Ahmednagar", Block: "Rahuri", State: "Maharashtra", Lat: 19.3926, Lon: 74.6489, Classification: ClassificationCritical, WaterTableDepthM: 22},
		{Pincode: "415001", District: "Satara", Block: "Satara", State: "Maharashtra", Lat: 17.6868, Lon: 73.9957, Classification: ClassificationSafe, WaterTableDepthM: 8},
		{Pincode: "416003", District: "Kolhapur", Block: "Karveer", State: "Maharashtra", Lat: 16.7050, Lon: 74.2433, Classification: ClassificationSafe, WaterTableDepthM: 6},
		{Pincode: "422001", District: "Nashik", Block: "Nashik", State: "Maharashtra", Lat: 19.9975, Lon: 73.7898, Classification: ClassificationSemiCritical, WaterTableDepthM: 14},
		{Pincode: "431001", District: "Aurangabad", Block: "Aurangabad", State: "Maharashtra", Lat: 19.8762, Lon: 75.3433, Classification: ClassificationSemiCritical, WaterTableDepthM: 18},
		{Pincode: "431601", District: "Nanded", Block: "Nanded", State: "Maharashtra", Lat: 19.1383, Lon: 77.3210, Classification: ClassificationSemiCritical, WaterTableDepthM: 16},
		{Pincode: "440001", District: "Nagpur", Block: "Nagpur Rural", State: "Maharashtra", Lat: 21.1458, Lon: 79.0882, Classification: ClassificationSafe, WaterTableDepthM: 10},
	}
}

// zonePrefixes maps 3-digit pincode prefixes to agro-climatic zones.
var zonePrefixes = map[string]string{
	"410": "Western Maharashtra",
	"411": "Western Maharashtra",
	"412": "Western Maharashtra",
	"415": "Western Maharashtra",
	"416": "Western Maharashtra",
	"413": "Marathwada",
	"414": "Marathwada",
	"431": "Marathwada",
	"422": "North Maharashtra",
	"423": "North Maharashtra",
	"424": "North Maharashtra",
	"425": "North Maharashtra",
	"440": "Vidarbha",
	"441": "Vidarbha",
	"442": "Vidarbha",
	"444": "Vidarbha",
	"400": "Konkan",
	"401": "Konkan",
	"402": "Konkan",
	"403": "Konkan",
}

// ZoneForPincode resolves a pincode to an agro-climatic zone by its 3-digit
// prefix, defaulting to "General" when the prefix is unmapped or the pincode
// is too short (a resolution miss, not an error).
func ZoneForPincode(pincode string) string {
	pincode = strings.TrimSpace(pincode)
	if len(pincode) < 3 {
		return "General"
	}
	if zone, ok := zonePrefixes[pincode[:3]]; ok {
		return zone
	}
	return "General"
}
