// Package gamedata bundles the default level table and gift catalog so the
// binary works with no external data files. Either source can be overridden
// with a CSV file path from the application config.
package gamedata

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/arantir/favorcalc/internal/catalog"
	"github.com/arantir/favorcalc/internal/leveltable"
)

//go:embed exp.csv
var expCSV []byte

//go:embed gifts.csv
var giftsCSV []byte

// LevelTable loads the level table from path, or the embedded default when
// path is empty.
func LevelTable(path string) (*leveltable.Table, error) {
	data := expCSV
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read level table %s: %w", path, err)
		}
	}
	return leveltable.Load(bytes.NewReader(data))
}

// GiftCatalog loads the gift catalog from path, or the embedded default when
// path is empty.
func GiftCatalog(path string) (*catalog.Catalog, error) {
	data := giftsCSV
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read gift catalog %s: %w", path, err)
		}
	}
	return catalog.Load(bytes.NewReader(data))
}
