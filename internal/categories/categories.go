// Package categories is the static asset taxonomy: category display data,
// subcategory and field lists, labels, and the depreciation hint used to
// estimate current values.
package categories

// Category identifiers.
const (
	RealEstate  = "real_estate"
	Vehicle     = "vehicle"
	Luxury      = "luxury"
	Electronics = "electronics"
	Home        = "home"
)

// Category describes one asset class.
type Category struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Icon             string   `json:"icon"`
	Color            string   `json:"color"`
	BgColor          string   `json:"bgColor"`
	Subcategories    []string `json:"subcategories"`
	Fields           []string `json:"fields"`
	DepreciationRate float64  `json:"depreciationRate"` // percent per year, 0 for appreciating classes
	DefaultValue     float64  `json:"defaultValue"`     // form pre-fill hint
}

// order is the display order of All.
var order = []string{RealEstate, Vehicle, Luxury, Electronics, Home}

var registry = map[string]Category{
	RealEstate: {
		ID:               RealEstate,
		Name:             "Real Estate",
		Icon:             "🏠",
		Color:            "#10B981",
		BgColor:          "#ECFDF5",
		Subcategories:    []string{"house", "apartment", "land", "commercial", "vacation_home"},
		Fields:           []string{"address", "squareFootage", "bedrooms", "bathrooms", "lotSize", "yearBuilt"},
		DepreciationRate: 0,
		DefaultValue:     200000,
	},
	Vehicle: {
		ID:               Vehicle,
		Name:             "Vehicles",
		Icon:             "🚗",
		Color:            "#3B82F6",
		BgColor:          "#EFF6FF",
		Subcategories:    []string{"car", "motorcycle", "boat", "rv", "truck", "aircraft"},
		Fields:           []string{"make", "model", "year", "vin", "mileage", "condition", "color"},
		DepreciationRate: 15,
		DefaultValue:     25000,
	},
	Luxury: {
		ID:               Luxury,
		Name:             "Luxury Items",
		Icon:             "⌚",
		Color:            "#8B5CF6",
		BgColor:          "#F3E8FF",
		Subcategories:    []string{"watch", "jewelry", "art", "antique", "designer", "collectible"},
		Fields:           []string{"brand", "model", "serialNumber", "authentication", "condition", "material"},
		DepreciationRate: 5,
		DefaultValue:     5000,
	},
	Electronics: {
		ID:               Electronics,
		Name:             "Electronics",
		Icon:             "💻",
		Color:            "#F59E0B",
		BgColor:          "#FFFBEB",
		Subcategories:    []string{"computer", "phone", "camera", "audio", "gaming", "tv"},
		Fields:           []string{"brand", "model", "serialNumber", "warranty", "condition", "specifications"},
		DepreciationRate: 25,
		DefaultValue:     1000,
	},
	Home: {
		ID:               Home,
		Name:             "Home Assets",
		Icon:             "🏡",
		Color:            "#EF4444",
		BgColor:          "#FEF2F2",
		Subcategories:    []string{"furniture", "appliance", "tool", "decor", "improvement", "garden"},
		Fields:           []string{"brand", "model", "room", "condition", "warranty", "material"},
		DepreciationRate: 10,
		DefaultValue:     500,
	},
}

// Get returns the category with the given id.
func Get(id string) (Category, bool) {
	c, ok := registry[id]
	if !ok {
		return Category{}, false
	}
	return c.clone(), true
}

// All returns every category in display order.
func All() []Category {
	out := make([]Category, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id].clone())
	}
	return out
}

// IDs returns the category ids in display order.
func IDs() []string {
	return append([]string(nil), order...)
}

// IsValid reports whether id names a registered category.
func IsValid(id string) bool {
	_, ok := registry[id]
	return ok
}

// DefaultSubcategory returns the first subcategory of the category, or "".
func DefaultSubcategory(id string) string {
	c, ok := registry[id]
	if !ok || len(c.Subcategories) == 0 {
		return ""
	}
	return c.Subcategories[0]
}

// HasSubcategory reports whether sub belongs to the category.
func HasSubcategory(id, sub string) bool {
	return contains(registry[id].Subcategories, sub)
}

// HasField reports whether field is declared for the category.
func HasField(id, field string) bool {
	return contains(registry[id].Fields, field)
}

// EditableFields returns the declared fields of the category paired with the
// current detail values, in declaration order. Undeclared detail keys are
// left out; they stay on the stored record but are not offered for editing.
func EditableFields(id string, details map[string]string) []FieldValue {
	c, ok := registry[id]
	if !ok {
		return nil
	}
	out := make([]FieldValue, 0, len(c.Fields))
	for _, f := range c.Fields {
		out = append(out, FieldValue{Key: f, Label: FieldLabel(f), Value: details[f]})
	}
	return out
}

// FieldValue is one editable detail field.
type FieldValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

func (c Category) clone() Category {
	c.Subcategories = append([]string(nil), c.Subcategories...)
	c.Fields = append([]string(nil), c.Fields...)
	return c
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
