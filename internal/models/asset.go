package models

import (
	"encoding/json"
	"time"
)

// Condition describes the physical state of an asset.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// Valid reports whether c is one of the fixed conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// DateLayout is the calendar-date format of PurchaseDate.
const DateLayout = "2006-01-02"

// Asset is one tracked possession. The JSON field names are the persisted
// format of a namespace's collection and must stay stable.
type Asset struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory"`
	PurchasePrice   float64   `json:"purchasePrice"`
	CurrentValue    float64   `json:"currentValue"`
	PurchaseDate    string    `json:"purchaseDate"`
	LastValueUpdate time.Time `json:"lastValueUpdate"`
	Condition       Condition `json:"condition"`
	Details         Details   `json:"details"`
	Tags            []string  `json:"tags"`
	Photos          []Photo   `json:"photos"`
	IsFavorite      bool      `json:"isFavorite"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GainLoss returns CurrentValue - PurchasePrice.
func (a *Asset) GainLoss() float64 {
	return a.CurrentValue - a.PurchasePrice
}

// GainLossPercent returns the gain relative to the purchase price, or 0 when
// the purchase price is zero.
func (a *Asset) GainLossPercent() float64 {
	if a.PurchasePrice == 0 {
		return 0
	}
	return a.GainLoss() / a.PurchasePrice * 100
}

// HasTag reports whether the asset carries tag.
func (a *Asset) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate store-owned slices and maps.
func (a Asset) Clone() Asset {
	out := a
	if a.Details != nil {
		out.Details = make(Details, len(a.Details))
		for k, v := range a.Details {
			out.Details[k] = v
		}
	}
	if a.Tags != nil {
		out.Tags = make([]string, len(a.Tags))
		copy(out.Tags, a.Tags)
	}
	if a.Photos != nil {
		out.Photos = make([]Photo, len(a.Photos))
		copy(out.Photos, a.Photos)
	}
	return out
}

// Photo is an image reference owned by exactly one asset. URLs derived from
// local files are only valid for the session that created them.
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
}

// UnmarshalJSON accepts numeric photo ids written by older clients.
func (p *Photo) UnmarshalJSON(data []byte) error {
	type photoAlias Photo
	aux := struct {
		ID json.RawMessage `json:"id"`
		*photoAlias
	}{photoAlias: (*photoAlias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = rawToString(aux.ID)
	return nil
}

// AssetDraft is the partial input accepted by the add operation.
type AssetDraft struct {
	Name          string    `json:"name" binding:"required,min=1,max=200"`
	Category      string    `json:"category" binding:"required,asset_category"`
	Subcategory   string    `json:"subcategory" binding:"max=50"`
	PurchasePrice Amount    `json:"purchasePrice"`
	CurrentValue  *Amount   `json:"currentValue"`
	PurchaseDate  string    `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
	Condition     Condition `json:"condition" binding:"omitempty,asset_condition"`
	Details       Details   `json:"details"`
	Tags          []string  `json:"tags" binding:"max=50,dive,min=1,max=50"`
	Photos        []Photo   `json:"photos"`
}

// AssetPatch holds the fields of an update; nil fields are left untouched.
// ID and CreatedAt are never patchable.
type AssetPatch struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Category      *string    `json:"category" binding:"omitempty,asset_category"`
	Subcategory   *string    `json:"subcategory" binding:"omitempty,max=50"`
	PurchasePrice *float64   `json:"purchasePrice"`
	CurrentValue  *float64   `json:"currentValue"`
	PurchaseDate  *string    `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
	Condition     *Condition `json:"condition" binding:"omitempty,asset_condition"`
	Details       Details    `json:"details"`
	Tags          *[]string  `json:"tags"`
	Photos        *[]Photo   `json:"photos"`
	IsFavorite    *bool      `json:"isFavorite"`
}

// IsEmpty reports whether the patch carries no field changes.
func (p *AssetPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Subcategory == nil &&
		p.PurchasePrice == nil && p.CurrentValue == nil && p.PurchaseDate == nil &&
		p.Condition == nil && p.Details == nil && p.Tags == nil && p.Photos == nil &&
		p.IsFavorite == nil
}
