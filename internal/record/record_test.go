package record

import (
	"testing"
	"time"
)

func TestAllTypesOrder(t *testing.T) {
	types := AllTypes()
	if len(types) != 10 {
		t.Fatalf("len(AllTypes()) = %d, want 10", len(types))
	}
	if types[0] != Profile {
		t.Errorf("first type = %s, want profile", types[0])
	}
	if types[len(types)-1] != Templates {
		t.Errorf("last type = %s, want templates", types[len(types)-1])
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range AllTypes() {
		if !typ.IsValid() {
			t.Errorf("%s reported invalid", typ)
		}
	}
	for _, typ := range []Type{"", "notifications", "Profile"} {
		if typ.IsValid() {
			t.Errorf("%q reported valid", typ)
		}
	}
}

func TestDateKey(t *testing.T) {
	at := time.Date(2025, 2, 23, 18, 30, 0, 0, time.UTC)
	if got := DateKey(at); got != "2025-02-23" {
		t.Errorf("DateKey = %q, want 2025-02-23", got)
	}
}
