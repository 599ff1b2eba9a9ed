package profile

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := mustProfile(t, "Hoshino")
	p.AssignTier(Tier40, 100001)
	p.AssignTier(Tier60, 100002)
	p.AssignTier(Tier180, 100018)
	p.AssignTier(Tier240, 100019)
	p.SetQuantity(100001, 12)
	p.SetQuantity(100018, 3)
	p.SetStartLevel(8)
	p.SetStartExp(42)

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode("Hoshino", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Name() != "Hoshino" {
		t.Errorf("Name() = %q, want %q", got.Name(), "Hoshino")
	}
	for _, tier := range AllTiers() {
		want := p.TierGifts(tier)
		if !reflect.DeepEqual(got.TierGifts(tier), want) {
			t.Errorf("tier %d gifts = %v, want %v", int(tier), got.TierGifts(tier), want)
		}
	}
	if !reflect.DeepEqual(got.Quantities(), p.Quantities()) {
		t.Errorf("Quantities() = %v, want %v", got.Quantities(), p.Quantities())
	}
	if got.StartLevel() != 8 || got.StartExp() != 42 {
		t.Errorf("start = (%d, %d), want (8, 42)", got.StartLevel(), got.StartExp())
	}
	if got.Linked() != p.Linked() {
		t.Errorf("Linked() = %v, want %v", got.Linked(), p.Linked())
	}
}

func TestLinkedFlagRoundTrip(t *testing.T) {
	p := mustProfile(t, "Misaka")
	p.AssignTier(Tier60, 1)
	p.SetLinked(true)

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode("Misaka", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Linked() {
		t.Error("Linked() = false after round-trip, want true")
	}
	// Linked profiles persist with empty tier sets; the backup is
	// transient and never written.
	if n := len(got.TierGifts(Tier60)); n != 0 {
		t.Errorf("tier 60 has %d gifts, want 0", n)
	}
}

func TestDecodeDefaults(t *testing.T) {
	p, err := Decode("Shiroko", []byte(`{}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, want default 1", p.StartLevel())
	}
	if p.StartExp() != 0 {
		t.Errorf("StartExp() = %d, want default 0", p.StartExp())
	}
	if p.Linked() {
		t.Error("Linked() = true, want default false")
	}
}

func TestDecodeSanitizes(t *testing.T) {
	p, err := Decode("Shiroko", []byte(`{
		"start_level": 0,
		"start_exp": -3,
		"gift_quantities": {"100001": 0, "100002": 4}
	}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, want clamped 1", p.StartLevel())
	}
	if p.StartExp() != 0 {
		t.Errorf("StartExp() = %d, want clamped 0", p.StartExp())
	}
	if _, ok := p.Quantities()[100001]; ok {
		t.Error("zero quantity retained, want dropped")
	}
	if got := p.Quantity(100002); got != 4 {
		t.Errorf("Quantity(100002) = %d, want 4", got)
	}
}

func TestDecodeEvictsLowerTierDuplicate(t *testing.T) {
	data := []byte(`{
		"tier40_gifts": [100000, 100001],
		"tier60_gifts": [100000],
		"tier180_gifts": [100020],
		"tier240_gifts": [100020]
	}`)

	p, err := Decode("Aru", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.InTier(Tier40, 100000) {
		t.Error("gift 100000 kept in tier 40 alongside tier 60")
	}
	if !p.InTier(Tier60, 100000) {
		t.Error("gift 100000 missing from tier 60")
	}
	if !p.InTier(Tier40, 100001) {
		t.Error("gift 100001 missing from tier 40")
	}
	if p.InTier(Tier180, 100020) {
		t.Error("gift 100020 kept in tier 180 alongside tier 240")
	}
	if !p.InTier(Tier240, 100020) {
		t.Error("gift 100020 missing from tier 240")
	}

	// Re-encoding persists the disjoint sets.
	out, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	q, err := Decode("Aru", out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if q.InTier(Tier40, 100000) || q.InTier(Tier180, 100020) {
		t.Error("duplicate tier membership survived a round trip")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode("X", []byte(`not json`)); err == nil {
		t.Error("Decode(garbage) = nil error, want error")
	}
}

func TestEncodeOmitsZeroQuantities(t *testing.T) {
	p := mustProfile(t, "Aru")
	p.SetQuantity(1, 5)
	p.SetQuantity(1, 0)
	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode("Aru", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Quantities()) != 0 {
		t.Errorf("Quantities() = %v, want empty", got.Quantities())
	}
}
