// Package app holds the single editing context that ties the profile store,
// the gift catalog and the favor engine together for a presentation layer.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/arantir/favorcalc/internal/catalog"
	"github.com/arantir/favorcalc/internal/favor"
	"github.com/arantir/favorcalc/internal/importer"
	"github.com/arantir/favorcalc/internal/profile"
	"github.com/arantir/favorcalc/internal/share"
	"github.com/arantir/favorcalc/internal/store"
)

// Options configures a Session.
type Options struct {
	Repo    store.ProfileRepo
	Engine  *favor.Engine
	Catalog *catalog.Catalog

	// Debounce is the recompute quiet window; zero means the default.
	Debounce time.Duration
}

// Session is the one active editing context. It owns the mutable "current
// profile" reference and threads it into the pure engine functions; every
// mutation requests a debounced recompute instead of computing inline.
type Session struct {
	mu      sync.Mutex
	repo    store.ProfileRepo
	engine  *favor.Engine
	catalog *catalog.Catalog
	rec     *favor.Recomputer

	active *profile.Profile

	// fallbackLinked is the transient linked toggle consulted when no
	// profile is active.
	fallbackLinked bool
}

// NewSession creates a Session.
func NewSession(opts Options) *Session {
	return &Session{
		repo:    opts.Repo,
		engine:  opts.Engine,
		catalog: opts.Catalog,
		rec:     favor.NewRecomputer(opts.Debounce),
	}
}

// Start loads the last active profile if one is recorded. A recorded name
// that no longer resolves leaves the session with no active profile.
func (s *Session) Start(ctx context.Context) error {
	name, err := s.repo.LastActive(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	p, err := s.repo.Get(ctx, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.active = p
	s.mu.Unlock()
	return nil
}

// Close cancels any pending recompute.
func (s *Session) Close() {
	s.rec.Close()
}

// Active returns the active profile, nil when none is selected.
func (s *Session) Active() *profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveName returns the active profile name, "" when none is selected.
func (s *Session) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.Name()
}

// CreateProfile creates, persists and activates a new empty profile. An
// empty or already-used name fails with a ValidationError and no state
// change.
func (s *Session) CreateProfile(ctx context.Context, name string) (*profile.Profile, error) {
	p, err := profile.New(name)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, p.Name())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &profile.ValidationError{Field: "profile name", Reason: "already exists"}
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.SetLastActive(ctx, p.Name()); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.active = p
	s.mu.Unlock()
	return p, nil
}

// DeleteProfile removes the named profile. Deleting the active profile
// clears the active reference; confirmation is the caller's responsibility.
func (s *Session) DeleteProfile(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	if s.active != nil && s.active.Name() == name {
		s.active = nil
	}
	s.mu.Unlock()
	return nil
}

// UseProfile activates the named profile. An unknown name is a no-op.
func (s *Session) UseProfile(ctx context.Context, name string) error {
	p, err := s.repo.Get(ctx, name)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	if err := s.repo.SetLastActive(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	s.active = p
	s.mu.Unlock()
	s.scheduleRecompute()
	return nil
}

// Profiles lists the stored profile names.
func (s *Session) Profiles(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Save persists the active profile.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	p := s.active
	s.mu.Unlock()
	if p == nil {
		return &profile.ValidationError{Field: "profile", Reason: "no active profile"}
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	return s.repo.SetLastActive(ctx, p.Name())
}

// withActive runs mutate on the active profile under the session lock, so
// edits never interleave with a recompute reading the same profile.
func (s *Session) withActive(mutate func(p *profile.Profile) error) error {
	s.mu.Lock()
	p := s.active
	if p == nil {
		s.mu.Unlock()
		return &profile.ValidationError{Field: "profile", Reason: "no active profile"}
	}
	err := mutate(p)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.scheduleRecompute()
	return nil
}

// SetQuantity records the owned quantity of a gift on the active profile.
func (s *Session) SetQuantity(giftID, qty int) error {
	return s.withActive(func(p *profile.Profile) error {
		p.SetQuantity(giftID, qty)
		return nil
	})
}

// AssignTier promotes a gift into a preference tier on the active profile.
func (s *Session) AssignTier(t profile.Tier, giftID int) error {
	return s.withActive(func(p *profile.Profile) error {
		return p.AssignTier(t, giftID)
	})
}

// ClearTier removes a gift from every preference tier on the active profile.
func (s *Session) ClearTier(giftID int) error {
	return s.withActive(func(p *profile.Profile) error {
		p.ClearTier(giftID)
		return nil
	})
}

// SetStartLevel sets the active profile's starting level, resetting its
// in-level experience.
func (s *Session) SetStartLevel(level int) error {
	return s.withActive(func(p *profile.Profile) error {
		return p.SetStartLevel(level)
	})
}

// SetStartExp sets the active profile's in-level experience.
func (s *Session) SetStartExp(exp int) error {
	return s.withActive(func(p *profile.Profile) error {
		return p.SetStartExp(exp)
	})
}

// SetLinked toggles linked mode. With an active profile it drives the
// profile's linked state machine; with none it flips the transient fallback
// toggle.
func (s *Session) SetLinked(on bool) {
	s.mu.Lock()
	if s.active != nil {
		s.active.SetLinked(on)
	} else {
		s.fallbackLinked = on
	}
	s.mu.Unlock()
	s.scheduleRecompute()
}

// ImportQuantities applies (gift id, quantity) pairs to the active profile.
// Ids missing from the catalog are ignored; the count actually applied is
// returned.
func (s *Session) ImportQuantities(items []importer.Item) (int, error) {
	applied := 0
	err := s.withActive(func(p *profile.Profile) error {
		for _, item := range items {
			if _, ok := s.catalog.ByID(item.ID); !ok {
				continue
			}
			p.SetQuantity(item.ID, item.Number)
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// ExportProfiles serializes every stored profile into an exchange file.
func (s *Session) ExportProfiles(ctx context.Context) ([]byte, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var profiles []*profile.Profile
	for _, name := range names {
		p, err := s.repo.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			profiles = append(profiles, p)
		}
	}
	return share.Export(profiles)
}

// ImportProfiles merges profiles from an exchange file. Names that already
// exist in the store are skipped, never overwritten. The first profile
// added (in name order) becomes active. Returns the number added.
func (s *Session) ImportProfiles(ctx context.Context, data []byte) (int, error) {
	incoming, err := share.Import(data)
	if err != nil {
		return 0, err
	}

	added := 0
	var firstAdded string
	for _, p := range incoming {
		existing, err := s.repo.Get(ctx, p.Name())
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return added, err
		}
		if firstAdded == "" {
			firstAdded = p.Name()
		}
		added++
	}

	if firstAdded != "" {
		if err := s.UseProfile(ctx, firstAdded); err != nil {
			return added, err
		}
	}
	return added, nil
}

// Project computes the projection inline for one-shot consumers.
func (s *Session) Project() favor.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectLocked()
}

func (s *Session) projectLocked() favor.Projection {
	if s.active == nil {
		rules := favor.FallbackRules(s.fallbackLinked)
		return s.engine.ProjectRules(rules, 1, 0, nil)
	}
	return s.engine.Project(s.active)
}

// Results delivers debounced recompute results for interactive consumers.
func (s *Session) Results() <-chan favor.Projection {
	return s.rec.Results()
}

func (s *Session) scheduleRecompute() {
	s.rec.Trigger(func() favor.Projection {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.projectLocked()
	})
}
