package models

import (
	"encoding/json"
	"testing"
)

func TestAsset_GainLoss(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		value       float64
		wantGain    float64
		wantPercent float64
	}{
		{name: "appreciated", price: 1000, value: 1500, wantGain: 500, wantPercent: 50},
		{name: "depreciated", price: 200, value: 150, wantGain: -50, wantPercent: -25},
		{name: "flat", price: 1000, value: 1000, wantGain: 0, wantPercent: 0},
		{name: "zero_price_guarded", price: 0, value: 300, wantGain: 300, wantPercent: 0},
		{name: "negative_value", price: 100, value: -100, wantGain: -200, wantPercent: -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Asset{PurchasePrice: tt.price, CurrentValue: tt.value}
			if got := a.GainLoss(); got != tt.wantGain {
				t.Errorf("GainLoss() = %v, want %v", got, tt.wantGain)
			}
			if got := a.GainLossPercent(); got != tt.wantPercent {
				t.Errorf("GainLossPercent() = %v, want %v", got, tt.wantPercent)
			}
		})
	}
}

func TestCondition_Valid(t *testing.T) {
	for _, c := range []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor} {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Condition("mint").Valid() {
		t.Error("expected mint to be invalid")
	}
}

func TestAmount_Unmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{`1000`, 1000},
		{`12.5`, 12.5},
		{`"1500.25"`, 1500.25},
		{`" 42 "`, 42},
		{`"abc"`, 0},
		{`"1500abc"`, 1500},
		{`"1,000"`, 1},
		{`"-2.5e2 units"`, -250},
		{`".5"`, 0.5},
		{`"7."`, 7},
		{`"1e"`, 1},
		{`"-"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a != tt.want {
				t.Errorf("got %v, want %v", a, tt.want)
			}
		})
	}
}

func TestDetails_TolerantDecode(t *testing.T) {
	raw := `{"address":"123 Maple","squareFootage":2400,"authentication":true,"gone":null,"dims":{"w":1}}`

	var d Details
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"address":        "123 Maple",
		"squareFootage":  "2400",
		"authentication": "true",
		"dims":           `{"w":1}`,
	}
	if len(d) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(d), d)
	}
	for k, v := range want {
		if d[k] != v {
			t.Errorf("details[%q] = %q, want %q", k, d[k], v)
		}
	}
}

func TestPhoto_NumericID(t *testing.T) {
	var p Photo
	if err := json.Unmarshal([]byte(`{"id":1700000000000.5,"url":"blob:x","caption":"front.jpg","size":10}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "1700000000000.5" {
		t.Errorf("expected numeric id kept as text, got %q", p.ID)
	}
	if p.Caption != "front.jpg" || p.Size != 10 {
		t.Errorf("unexpected photo: %+v", p)
	}
}

func TestAsset_Clone(t *testing.T) {
	a := Asset{
		Details: Details{"vin": "123"},
		Tags:    []string{"daily"},
		Photos:  []Photo{{ID: "p1"}},
	}
	c := a.Clone()
	c.Details["vin"] = "changed"
	c.Tags[0] = "changed"
	c.Photos[0].ID = "changed"

	if a.Details["vin"] != "123" || a.Tags[0] != "daily" || a.Photos[0].ID != "p1" {
		t.Errorf("clone shares state with original: %+v", a)
	}
}

func TestAssetPatch_IsEmpty(t *testing.T) {
	var p AssetPatch
	if !p.IsEmpty() {
		t.Error("zero patch should be empty")
	}
	name := "x"
	p.Name = &name
	if p.IsEmpty() {
		t.Error("patch with name should not be empty")
	}
}

func TestAssetDraft_CurrentValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "absent", raw: `{"name":"Watch"}`},
		{name: "null", raw: `{"currentValue":null}`},
		{name: "blank_string", raw: `{"currentValue":""}`},
		{name: "not_a_number", raw: `{"currentValue":"n/a"}`},
		{name: "zero_is_kept", raw: `{"currentValue":0}`, want: floatPtr(0)},
		{name: "numeric_string", raw: `{"currentValue":"750"}`, want: floatPtr(750)},
		{name: "number", raw: `{"currentValue":1250.5}`, want: floatPtr(1250.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d AssetDraft
			if err := json.Unmarshal([]byte(tt.raw), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tt.want == nil && d.CurrentValue != nil:
				t.Errorf("expected no current value, got %v", *d.CurrentValue)
			case tt.want != nil && d.CurrentValue == nil:
				t.Errorf("expected %v, got none", *tt.want)
			case tt.want != nil && d.CurrentValue.Float() != *tt.want:
				t.Errorf("expected %v, got %v", *tt.want, d.CurrentValue.Float())
			}
		})
	}

	t.Run("other_fields_still_decode", func(t *testing.T) {
		var d AssetDraft
		raw := `{"name":"Watch","category":"luxury","purchasePrice":"1000","currentValue":"","tags":["gift"]}`
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Name != "Watch" || d.Category != "luxury" || d.PurchasePrice != 1000 || len(d.Tags) != 1 {
			t.Errorf("unexpected draft: %+v", d)
		}
	})
}

func floatPtr(v float64) *float64 {
	return &v
}
