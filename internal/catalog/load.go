package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads gift definitions from CSV data with a header row containing
// "id", "name" and "base_exp" columns, in any order.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read gift catalog header: %w", err)
	}

	idCol, nameCol, expCol := -1, -1, -1
	for i, col := range header {
		switch strings.TrimPrefix(strings.TrimSpace(col), "\uFEFF") {
		case "id":
			idCol = i
		case "name":
			nameCol = i
		case "base_exp":
			expCol = i
		}
	}
	if idCol < 0 || nameCol < 0 || expCol < 0 {
		return nil, fmt.Errorf("gift catalog header missing id/name/base_exp columns: %v", header)
	}

	var gifts []Gift
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read gift catalog row: %w", err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idCol]))
		if err != nil {
			return nil, fmt.Errorf("parse gift id %q: %w", record[idCol], err)
		}
		baseExp, err := strconv.Atoi(strings.TrimSpace(record[expCol]))
		if err != nil {
			return nil, fmt.Errorf("parse base exp %q: %w", record[expCol], err)
		}
		gifts = append(gifts, Gift{
			ID:      id,
			Name:    strings.TrimSpace(record[nameCol]),
			BaseExp: baseExp,
		})
	}

	return New(gifts)
}
