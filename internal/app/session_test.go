package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arantir/favorcalc/internal/catalog"
	"github.com/arantir/favorcalc/internal/favor"
	"github.com/arantir/favorcalc/internal/importer"
	"github.com/arantir/favorcalc/internal/leveltable"
	"github.com/arantir/favorcalc/internal/profile"
	"github.com/arantir/favorcalc/internal/store"
)

func newTestSession(t *testing.T) (*Session, store.ProfileRepo) {
	t.Helper()
	table, err := leveltable.New([]leveltable.Entry{
		{Level: 1, CumulativeExp: 0},
		{Level: 2, CumulativeExp: 100},
		{Level: 3, CumulativeExp: 250},
	})
	if err != nil {
		t.Fatalf("leveltable.New: %v", err)
	}
	cat, err := catalog.New([]catalog.Gift{
		{ID: 100000, Name: "gold gift", BaseExp: 20},
		{ID: 100008, Name: "special gift", BaseExp: 240},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	repo := store.NewMemoryRepo()
	s := NewSession(Options{
		Repo:     repo,
		Engine:   favor.New(favor.DefaultConfig(), cat, table),
		Catalog:  cat,
		Debounce: 10 * time.Millisecond,
	})
	t.Cleanup(s.Close)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, repo
}

func TestCreateProfileActivates(t *testing.T) {
	s, repo := newTestSession(t)
	ctx := context.Background()

	p, err := s.CreateProfile(ctx, "Aru")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if s.ActiveName() != "Aru" {
		t.Errorf("ActiveName = %q, want Aru", s.ActiveName())
	}
	if p != s.Active() {
		t.Error("Active returned a different profile")
	}

	name, err := repo.LastActive(ctx)
	if err != nil {
		t.Fatalf("LastActive: %v", err)
	}
	if name != "Aru" {
		t.Errorf("LastActive = %q, want Aru", name)
	}
}

func TestCreateProfileDuplicate(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	_, err := s.CreateProfile(ctx, "Aru")
	var verr *profile.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("duplicate CreateProfile = %v, want ValidationError", err)
	}
	if s.ActiveName() != "Aru" {
		t.Errorf("ActiveName = %q after failed create", s.ActiveName())
	}
}

func TestDeleteActiveProfileClearsReference(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.DeleteProfile(ctx, "Aru"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if s.Active() != nil {
		t.Error("active profile survived deletion")
	}
}

func TestUseUnknownProfileIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.UseProfile(ctx, "nobody"); err != nil {
		t.Fatalf("UseProfile: %v", err)
	}
	if s.ActiveName() != "Aru" {
		t.Errorf("ActiveName = %q, want Aru", s.ActiveName())
	}
}

func TestStartRestoresLastActive(t *testing.T) {
	s, repo := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.SetQuantity(100000, 5); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	// A fresh session over the same store resumes where the last left off.
	table := s.engine.Table()
	s2 := NewSession(Options{
		Repo:    repo,
		Engine:  favor.New(favor.DefaultConfig(), s.catalog, table),
		Catalog: s.catalog,
	})
	defer s2.Close()
	if err := s2.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s2.ActiveName() != "Aru" {
		t.Fatalf("ActiveName = %q, want Aru", s2.ActiveName())
	}
	if got := s2.Active().Quantity(100000); got != 5 {
		t.Errorf("Quantity = %d, want 5", got)
	}
}

func TestMutationsRequireActiveProfile(t *testing.T) {
	s, _ := newTestSession(t)

	var verr *profile.ValidationError
	if err := s.SetQuantity(100000, 1); !errors.As(err, &verr) {
		t.Errorf("SetQuantity = %v, want ValidationError", err)
	}
	if err := s.AssignTier(profile.Tier40, 100000); !errors.As(err, &verr) {
		t.Errorf("AssignTier = %v, want ValidationError", err)
	}
	if err := s.SetStartLevel(2); !errors.As(err, &verr) {
		t.Errorf("SetStartLevel = %v, want ValidationError", err)
	}
}

func TestProjectWithoutActiveProfile(t *testing.T) {
	s, _ := newTestSession(t)

	proj := s.Project()
	if proj.StartLevel != 1 || proj.ExpGained != 0 {
		t.Errorf("fallback projection = %+v", proj)
	}

	// The transient toggle changes how the override gift would resolve,
	// but with no quantities the projection stays at the floor.
	s.SetLinked(true)
	proj = s.Project()
	if proj.ReachedLevel != 1 {
		t.Errorf("ReachedLevel = %d, want 1", proj.ReachedLevel)
	}
}

func TestSetLinkedOnProfile(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.AssignTier(profile.Tier40, 100000); err != nil {
		t.Fatalf("AssignTier: %v", err)
	}

	s.SetLinked(true)
	if !s.Active().Linked() {
		t.Fatal("profile not linked")
	}
	if len(s.Active().TierGifts(profile.Tier40)) != 0 {
		t.Error("tier sets not cleared while linked")
	}

	s.SetLinked(false)
	if !s.Active().InTier(profile.Tier40, 100000) {
		t.Error("tier assignment not restored after unlinking")
	}
}

func TestImportQuantitiesFiltersUnknownIDs(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	applied, err := s.ImportQuantities([]importer.Item{
		{ID: 100000, Number: 3},
		{ID: 999999, Number: 8},
		{ID: 100008, Number: 1},
	})
	if err != nil {
		t.Fatalf("ImportQuantities: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if got := s.Active().Quantity(100000); got != 3 {
		t.Errorf("Quantity(100000) = %d, want 3", got)
	}
	if got := s.Active().Quantity(999999); got != 0 {
		t.Errorf("Quantity(999999) = %d, want 0", got)
	}
}

func TestImportProfilesSkipsExisting(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Mika"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.SetQuantity(100000, 9); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data := []byte(`{
		"Aru": {"start_level": 2},
		"Mika": {"start_level": 5}
	}`)
	added, err := s.ImportProfiles(ctx, data)
	if err != nil {
		t.Fatalf("ImportProfiles: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}

	// The first added name becomes active; the existing one is untouched.
	if s.ActiveName() != "Aru" {
		t.Errorf("ActiveName = %q, want Aru", s.ActiveName())
	}
	mika, err := s.repo.Get(ctx, "Mika")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if mika.Quantity(100000) != 9 {
		t.Error("existing profile was overwritten by import")
	}
}

func TestExportImportAcrossSessions(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err := s.SetQuantity(100000, 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := s.ExportProfiles(ctx)
	if err != nil {
		t.Fatalf("ExportProfiles: %v", err)
	}

	other, _ := newTestSession(t)
	added, err := other.ImportProfiles(ctx, data)
	if err != nil {
		t.Fatalf("ImportProfiles: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if got := other.Active().Quantity(100000); got != 4 {
		t.Errorf("Quantity = %d, want 4", got)
	}
}

func TestEditsOverlappingRecompute(t *testing.T) {
	table, err := leveltable.New([]leveltable.Entry{
		{Level: 1, CumulativeExp: 0},
		{Level: 2, CumulativeExp: 100},
	})
	if err != nil {
		t.Fatalf("leveltable.New: %v", err)
	}
	cat, err := catalog.New([]catalog.Gift{
		{ID: 100000, Name: "gold gift", BaseExp: 20},
		{ID: 100008, Name: "special gift", BaseExp: 240},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	s := NewSession(Options{
		Repo:     store.NewMemoryRepo(),
		Engine:   favor.New(favor.DefaultConfig(), cat, table),
		Catalog:  cat,
		Debounce: time.Millisecond,
	})
	defer s.Close()
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	// Long mutation batches with a window short enough that recomputes
	// fire mid-stream; the race detector catches any unsynchronized
	// access between an edit and a concurrent projection.
	items := make([]importer.Item, 0, 2000)
	for i := 0; i < 1000; i++ {
		items = append(items,
			importer.Item{ID: 100000, Number: i%9 + 1},
			importer.Item{ID: 100008, Number: 1})
	}
	for i := 0; i < 50; i++ {
		if _, err := s.ImportQuantities(items); err != nil {
			t.Fatalf("ImportQuantities: %v", err)
		}
		if err := s.SetQuantity(100000, i+1); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
		if i%10 == 0 {
			time.Sleep(2 * time.Millisecond)
		}
	}

	select {
	case <-s.Results():
	case <-time.After(time.Second):
		t.Fatal("no recompute result delivered")
	}
}

func TestMutationsDeliverDebouncedResult(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.CreateProfile(ctx, "Aru"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	// A burst of edits yields one projection reflecting the final state.
	for qty := 1; qty <= 5; qty++ {
		if err := s.SetQuantity(100000, qty); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
	}

	select {
	case proj := <-s.Results():
		if proj.ExpGained != 100 {
			t.Errorf("ExpGained = %d, want 100", proj.ExpGained)
		}
		if proj.ReachedLevel != 2 {
			t.Errorf("ReachedLevel = %d, want 2", proj.ReachedLevel)
		}
	case <-time.After(time.Second):
		t.Fatal("no recompute result delivered")
	}
}
