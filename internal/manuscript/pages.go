package manuscript

import (
	"sort"
	"strconv"
)

// LinesForPage returns the records of page (1-based) ordered by line number.
//
// The returned pointers address elements of all, so a record keeps its
// identity across calls as long as the caller does not reallocate the slice.
// Duplicate line numbers keep their input order.
func LinesForPage(all []LineRecord, page int) []*LineRecord {
	id := strconv.Itoa(page)
	var out []*LineRecord
	for i := range all {
		if all[i].ImageID == id {
			out = append(out, &all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Contains reports whether line is one of lines by identity.
func Contains(lines []*LineRecord, line *LineRecord) bool {
	for _, l := range lines {
		if l == line {
			return true
		}
	}
	return false
}
