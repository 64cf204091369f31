package capture

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Address is a normalized target URL. It always carries an explicit scheme.
type Address string

func (a Address) String() string { return string(a) }

// NormalizeAddress prefixes a bare address with https://. Addresses that
// already carry an http or https scheme pass through unchanged.
func NormalizeAddress(raw string) Address {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return Address(raw)
	}
	return Address("https://" + raw)
}

// ParseList reads one address per line, dropping blanks. Lists longer than
// max are truncated; the second return reports whether truncation happened.
func ParseList(text string, max int) ([]Address, bool) {
	var addrs []Address
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		addrs = append(addrs, NormalizeAddress(line))
	}
	if max > 0 && len(addrs) > max {
		return addrs[:max], true
	}
	return addrs, false
}

// ParseCSV reads domains from the "name" column of a CSV file, normalizes
// them, and de-duplicates preserving first occurrence. Lists longer than max
// are truncated.
func ParseCSV(r io.Reader, max int) ([]Address, bool, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, false, fmt.Errorf("reading CSV header: %w", err)
	}
	nameCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "name") {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil, false, fmt.Errorf("CSV file must contain a column named %q", "name")
	}

	var addrs []Address
	seen := make(map[Address]struct{})
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading CSV row: %w", err)
		}
		if nameCol >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[nameCol])
		if value == "" {
			continue
		}
		addr := NormalizeAddress(value)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}

	if max > 0 && len(addrs) > max {
		return addrs[:max], true, nil
	}
	return addrs, false, nil
}
