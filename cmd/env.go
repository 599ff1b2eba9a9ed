package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/app"
	"github.com/arantir/favorcalc/internal/catalog"
	"github.com/arantir/favorcalc/internal/config"
	"github.com/arantir/favorcalc/internal/favor"
	"github.com/arantir/favorcalc/internal/gamedata"
	"github.com/arantir/favorcalc/internal/store"
)

// env is the wired-up application context commands run against.
type env struct {
	st      *store.Store
	session *app.Session
	engine  *favor.Engine
	catalog *catalog.Catalog
}

// openEnv loads config and data sources, opens the profile store and starts
// the session. Missing or malformed level/catalog data is fatal; a store
// that cannot be opened degrades to an empty in-memory one.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	table, err := gamedata.LevelTable(cfg.LevelTable)
	if err != nil {
		return nil, fmt.Errorf("load level table: %w", err)
	}
	cat, err := gamedata.GiftCatalog(cfg.GiftCatalog)
	if err != nil {
		return nil, fmt.Errorf("load gift catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	var repo store.ProfileRepo
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open profile store (%v); continuing with an empty store\n", err)
		repo = store.NewMemoryRepo()
		st = nil
	} else {
		repo = st.Profiles()
	}

	engine := favor.New(cfg.Favor(), cat, table)
	session := app.NewSession(app.Options{
		Repo:     repo,
		Engine:   engine,
		Catalog:  cat,
		Debounce: time.Duration(cfg.DebounceMs) * time.Millisecond,
	})
	if err := session.Start(cmd.Context()); err != nil {
		session.Close()
		if st != nil {
			st.Close()
		}
		return nil, fmt.Errorf("load last profile: %w", err)
	}

	return &env{st: st, session: session, engine: engine, catalog: cat}, nil
}

func (e *env) Close() {
	e.session.Close()
	if e.st != nil {
		e.st.Close()
	}
}
