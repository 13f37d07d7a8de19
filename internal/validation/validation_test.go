package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("other", "ok", v)
	if v["name"] != "required" {
		t.Fatalf("expected required violation, got %v", v)
	}
	if _, ok := v["other"]; ok {
		t.Fatalf("unexpected violation on filled field: %v", v)
	}
}

func TestDigits(t *testing.T) {
	v := Violations{}
	Digits("id", "0801199901234", 13, v)
	if !v.Empty() {
		t.Fatalf("valid id flagged: %v", v)
	}
	Digits("short", "123", 13, v)
	if v["short"] != "bad_length" {
		t.Fatalf("expected bad_length, got %v", v)
	}
	Digits("alpha", "08011999O1234", 13, v)
	if v["alpha"] != "digits_only" {
		t.Fatalf("expected digits_only, got %v", v)
	}
}

func TestMinInt(t *testing.T) {
	v := Violations{}
	MinInt("qty", 0, 1, v)
	if v["qty"] != "below_minimum" {
		t.Fatalf("expected below_minimum, got %v", v)
	}
}
