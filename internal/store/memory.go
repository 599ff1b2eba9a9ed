package store

import (
	"context"
	"sort"

	"github.com/arantir/favorcalc/internal/profile"
)

// MemoryRepo is an in-memory ProfileRepo. It backs tests and the recovery
// path taken when the on-disk store cannot be opened: the session then runs
// against an empty store instead of aborting.
type MemoryRepo struct {
	profiles   map[string][]byte
	lastActive string
}

// NewMemoryRepo creates an empty in-memory profile store.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string][]byte)}
}

func (r *MemoryRepo) Save(_ context.Context, p *profile.Profile) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	r.profiles[p.Name()] = data
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, name string) (*profile.Profile, error) {
	data, ok := r.profiles[name]
	if !ok {
		return nil, nil
	}
	p, err := profile.Decode(name, data)
	if err != nil {
		return nil, nil
	}
	return p, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *MemoryRepo) Delete(_ context.Context, name string) error {
	delete(r.profiles, name)
	if r.lastActive == name {
		r.lastActive = ""
	}
	return nil
}

func (r *MemoryRepo) LastActive(_ context.Context) (string, error) {
	return r.lastActive, nil
}

func (r *MemoryRepo) SetLastActive(_ context.Context, name string) error {
	r.lastActive = name
	return nil
}
