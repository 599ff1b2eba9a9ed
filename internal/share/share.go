// Package share reads and writes profile exchange files: a JSON object of
// profile name → profile document, the format users pass around to copy a
// student configuration between machines.
package share

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/arantir/favorcalc/internal/profile"
)

// InvalidFileError reports an exchange file that failed structural
// validation; nothing is imported from such a file.
type InvalidFileError struct {
	Err error
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid profile exchange file: %v", e.Err)
}

func (e *InvalidFileError) Unwrap() error { return e.Err }

// Export serializes profiles into the exchange format, keyed and ordered by
// name.
func Export(profiles []*profile.Profile) ([]byte, error) {
	sorted := make([]*profile.Profile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	docs := make(map[string]json.RawMessage, len(sorted))
	for _, p := range sorted {
		data, err := p.Encode()
		if err != nil {
			return nil, err
		}
		docs[p.Name()] = data
	}
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode exchange file: %w", err)
	}
	return out, nil
}

// Import parses and validates an exchange file, returning the decoded
// profiles in name order. Merge policy (what happens to names that already
// exist) is the caller's concern.
func Import(data []byte) ([]*profile.Profile, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, &InvalidFileError{Err: err}
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]*profile.Profile, 0, len(names))
	for _, name := range names {
		p, err := profile.Decode(name, docs[name])
		if err != nil {
			return nil, &InvalidFileError{Err: err}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
