package categories

var subcategoryLabels = map[string]string{
	// Real estate
	"house":         "House",
	"apartment":     "Apartment",
	"land":          "Land",
	"commercial":    "Commercial Property",
	"vacation_home": "Vacation Home",

	// Vehicles
	"car":        "Car",
	"motorcycle": "Motorcycle",
	"boat":       "Boat",
	"rv":         "RV/Motorhome",
	"truck":      "Truck",
	"aircraft":   "Aircraft",

	// Luxury
	"watch":       "Watch",
	"jewelry":     "Jewelry",
	"art":         "Art",
	"antique":     "Antique",
	"designer":    "Designer Item",
	"collectible": "Collectible",

	// Electronics
	"computer": "Computer",
	"phone":    "Phone",
	"camera":   "Camera",
	"audio":    "Audio Equipment",
	"gaming":   "Gaming System",
	"tv":       "Television",

	// Home
	"furniture":   "Furniture",
	"appliance":   "Appliance",
	"tool":        "Tool",
	"decor":       "Decor",
	"improvement": "Home Improvement",
	"garden":      "Garden Equipment",
}

var fieldLabels = map[string]string{
	"address":        "Address",
	"squareFootage":  "Square Footage",
	"bedrooms":       "Bedrooms",
	"bathrooms":      "Bathrooms",
	"lotSize":        "Lot Size",
	"yearBuilt":      "Year Built",
	"make":           "Make",
	"model":          "Model",
	"year":           "Year",
	"vin":            "VIN",
	"mileage":        "Mileage",
	"condition":      "Condition",
	"color":          "Color",
	"brand":          "Brand",
	"serialNumber":   "Serial Number",
	"authentication": "Authentication",
	"material":       "Material",
	"warranty":       "Warranty",
	"room":           "Room",
	"specifications": "Specifications",
}

// SubcategoryLabel returns the display label of a subcategory id, or the id itself.
func SubcategoryLabel(id string) string {
	if l, ok := subcategoryLabels[id]; ok {
		return l
	}
	return id
}

// FieldLabel returns the display label of a detail field key, or the key itself.
func FieldLabel(key string) string {
	if l, ok := fieldLabels[key]; ok {
		return l
	}
	return key
}

// ConditionOption is a selectable asset condition.
type ConditionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Conditions returns the condition options, best first.
func Conditions() []ConditionOption {
	return []ConditionOption{
		{Value: "excellent", Label: "Excellent", Color: "#10B981"},
		{Value: "good", Label: "Good", Color: "#3B82F6"},
		{Value: "fair", Label: "Fair", Color: "#F59E0B"},
		{Value: "poor", Label: "Poor", Color: "#EF4444"},
	}
}
