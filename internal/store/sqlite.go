package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arantir/favorcalc/internal/profile"
)

// sqliteRepo implements ProfileRepo over the profiles/app_state tables.
type sqliteRepo struct {
	db *sql.DB
}

func (r *sqliteRepo) Save(ctx context.Context, p *profile.Profile) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		p.Name(), string(data))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name(), err)
	}
	return nil
}

func (r *sqliteRepo) Get(ctx context.Context, name string) (*profile.Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}

	p, err := profile.Decode(name, []byte(data))
	if err != nil {
		// An undecodable row behaves like an absent profile.
		return nil, nil
	}
	return p, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan profile name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return names, nil
}

func (r *sqliteRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ? AND value = ?`, lastActiveKey, name); err != nil {
		return fmt.Errorf("clear active pointer: %w", err)
	}
	return nil
}

func (r *sqliteRepo) LastActive(ctx context.Context) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, lastActiveKey).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read active pointer: %w", err)
	}
	return name, nil
}

func (r *sqliteRepo) SetLastActive(ctx context.Context, name string) error {
	if name == "" {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM app_state WHERE key = ?`, lastActiveKey)
		if err != nil {
			return fmt.Errorf("clear active pointer: %w", err)
		}
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastActiveKey, name)
	if err != nil {
		return fmt.Errorf("set active pointer: %w", err)
	}
	return nil
}
