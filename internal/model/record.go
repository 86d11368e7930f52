package model

// Record is the domain model for a task entry.
type Record struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	IsComplete bool   `json:"isComplete"`
}

// EditRecord is a Record as seen inside an edit session.
// IsEditing is a view concern and is never persisted.
type EditRecord struct {
	Record
	IsEditing bool `json:"-"`
}

// Clone returns a copy of records that shares no backing array.
func Clone(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
