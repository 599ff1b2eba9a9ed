package store

import (
	"context"

	"github.com/arantir/favorcalc/internal/profile"
)

// lastActiveKey is the app_state key holding the last active profile name.
const lastActiveKey = "last_active_profile"

// ProfileRepo is the keyed profile store: name → serialized profile, plus a
// pointer to the last active profile name.
//
// Get returns (nil, nil) for an unknown name. A stored profile that cannot
// be decoded is treated the same way rather than failing the read.
type ProfileRepo interface {
	Save(ctx context.Context, p *profile.Profile) error
	Get(ctx context.Context, name string) (*profile.Profile, error)
	List(ctx context.Context) ([]string, error)

	// Delete removes the named profile and clears the last-active pointer
	// if it referenced it. Deleting an unknown name is a no-op.
	Delete(ctx context.Context, name string) error

	// LastActive returns the recorded active profile name, "" when unset.
	LastActive(ctx context.Context) (string, error)

	// SetLastActive records name as the active profile; "" clears it.
	SetLastActive(ctx context.Context, name string) error
}
