package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestLargeHeavyConversion(t *testing.T) {
	for x := 0; x <= 20000; x++ {
		back := LargeToHeavy(HeavyToLarge(x))
		if d := x - back; d < 0 || d > 1 {
			t.Fatalf("LargeToHeavy(HeavyToLarge(%d)) = %d", x, back)
		}
	}
	if LargeToHeavy(50000) != 35000 || HeavyToLarge(35000) != 50000 {
		t.Errorf("7:10 ratio broken: %d %d", LargeToHeavy(50000), HeavyToLarge(35000))
	}
}

func TestParseGameMode(t *testing.T) {
	for s, want := range map[string]GameMode{"realism": Realism, "Realism": Realism, " EASY ": Easy, "": Realism} {
		got, err := ParseGameMode(s)
		if err != nil {
			t.Errorf("%q: unexpected error %v", s, err)
		} else if got != want {
			t.Errorf("%q: got %v, expected %v", s, got, want)
		}
	}
	if _, err := ParseGameMode("hard"); !errors.Is(err, ErrUnknownGameMode) {
		t.Errorf("expected ErrUnknownGameMode, got %v", err)
	}
}

func TestGameModeJSON(t *testing.T) {
	var v struct {
		Mode GameMode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(`{"mode":"easy"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Mode != Easy {
		t.Errorf("mode = %v, expected Easy", v.Mode)
	}
	b, _ := json.Marshal(v)
	if string(b) != `{"mode":"Easy"}` {
		t.Errorf("marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`{"mode":"nightmare"}`), &v); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestClassJSON(t *testing.T) {
	var pr []Class
	if err := json.Unmarshal([]byte(`["y","J","F"]`), &pr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(pr) != 3 || pr[0] != Economy || pr[1] != Business || pr[2] != First {
		t.Errorf("priority = %v", pr)
	}
	if _, err := ParseClass("X"); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("expected ErrUnknownClass, got %v", err)
	}
}

func TestConfigurationEquivalents(t *testing.T) {
	c := Configuration{F: 10, J: 20, Y: 30}
	if c.EconomyEquivalent() != 100 || c.Seats() != 60 {
		t.Errorf("pax equivalents wrong: %d %d", c.EconomyEquivalent(), c.Seats())
	}
	c = Configuration{L: 10000, H: 3000}
	if c.HeavyEquivalent() != 10000 {
		t.Errorf("heavy equivalent = %d", c.HeavyEquivalent())
	}
	c.Set(Heavy, 1)
	if c.Get(Heavy) != 1 {
		t.Errorf("Set/Get mismatch")
	}
}

func TestStaffArithmetic(t *testing.T) {
	s := Staff{Pilots: 1, Crew: 2, Engineers: 3, Tech: 4}
	if got := s.Scale(2).Add(s); got != (Staff{3, 6, 9, 12}) {
		t.Errorf("got %+v", got)
	}
}

func TestStopovers(t *testing.T) {
	r := StopoverRoute{Airports: []Airport{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	if s := r.Stopovers(); len(s) != 2 || s[0].ID != "b" || s[1].ID != "c" {
		t.Errorf("stopovers = %+v", s)
	}
	if s := (StopoverRoute{}).Stopovers(); s != nil {
		t.Errorf("expected nil stopovers")
	}
}
