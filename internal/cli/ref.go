package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Makepad-fr/records/internal/model"
)

// resolve finds a record by 1-based index, full id or unique id prefix.
func resolve(records []model.Record, ref string) (model.Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Record{}, fmt.Errorf("%w: empty reference", ErrNoMatch)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(records) {
			return model.Record{}, fmt.Errorf("%w: index out of range: have %d, got %d", ErrNoMatch, len(records), n)
		}
		return records[n-1], nil
	}
	if i := model.IndexOf(records, ref); i >= 0 {
		return records[i], nil
	}
	var hits []model.Record
	for _, r := range records {
		if strings.HasPrefix(r.ID, ref) {
			hits = append(hits, r)
		}
	}
	switch len(hits) {
	case 0:
		return model.Record{}, fmt.Errorf("%w: %q", ErrNoMatch, ref)
	case 1:
		return hits[0], nil
	default:
		return model.Record{}, fmt.Errorf("%w: %q matches %d records", ErrAmbiguous, ref, len(hits))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
