package core

import (
	"encoding/json"
	"testing"
)

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("12.5")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if m.Display() != "12.50" {
		t.Fatalf("Display()=%q want 12.50", m.Display())
	}

	for _, bad := range []string{"", "abc", "-1", "-0.01"} {
		if _, err := MoneyFromString(bad); err != ErrInvalidAmount {
			t.Fatalf("MoneyFromString(%q) expected ErrInvalidAmount, got %v", bad, err)
		}
	}
}

func TestMoneyAdd(t *testing.T) {
	a, _ := MoneyFromString("0.1")
	b, _ := MoneyFromString("0.2")
	if got := a.Add(b).Display(); got != "0.30" {
		t.Fatalf("0.1+0.2=%q want 0.30", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	m, _ := MoneyFromString("99.9")
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Plain JSON number, two decimals, no quotes.
	if string(b) != "99.90" {
		t.Fatalf("marshal=%s", b)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("50"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	var fromString Money
	if err := json.Unmarshal([]byte(`"50"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromNumber.Display() != fromString.Display() {
		t.Fatalf("number and string forms differ: %q vs %q", fromNumber.Display(), fromString.Display())
	}

	var neg Money
	if err := json.Unmarshal([]byte("-5"), &neg); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}
