package surgery

import (
	"bytes"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// OrderSurgeons merges a free-form drag-order string with the selected
// surgeon set. Tokens are surgeon ids separated by commas or whitespace.
// Tokens that parse to a selected surgeon claim the next position, in token
// order; malformed tokens, ids outside the selection and repeats are
// dropped. Selected surgeons the order string never mentions are appended
// in ascending id order, so the result always contains exactly the
// selected set.
func OrderSurgeons(order string, selected []uuid.UUID) []uuid.UUID {
	allowed := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		allowed[id] = true
	}

	var out []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(selected))
	tokens := strings.FieldsFunc(order, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		id, err := uuid.Parse(tok)
		if err != nil || !allowed[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}

	var rest []uuid.UUID
	for id := range allowed {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return bytes.Compare(rest[i][:], rest[j][:]) < 0
	})
	return append(out, rest...)
}
