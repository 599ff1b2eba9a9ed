package leveltable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads level table entries from CSV data with a header row containing
// "level" and "cumulative_exp" columns, in any order.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read level table header: %w", err)
	}

	levelCol, expCol := -1, -1
	for i, col := range header {
		switch strings.TrimPrefix(strings.TrimSpace(col), "\uFEFF") {
		case "level":
			levelCol = i
		case "cumulative_exp":
			expCol = i
		}
	}
	if levelCol < 0 || expCol < 0 {
		return nil, fmt.Errorf("level table header missing level/cumulative_exp columns: %v", header)
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read level table row: %w", err)
		}

		level, err := strconv.Atoi(strings.TrimSpace(record[levelCol]))
		if err != nil {
			return nil, fmt.Errorf("parse level %q: %w", record[levelCol], err)
		}
		exp, err := strconv.Atoi(strings.TrimSpace(record[expCol]))
		if err != nil {
			return nil, fmt.Errorf("parse cumulative exp %q: %w", record[expCol], err)
		}
		entries = append(entries, Entry{Level: level, CumulativeExp: exp})
	}

	return New(entries)
}
