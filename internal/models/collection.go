package models

import "slices"

// Collection types.
const (
	CollectionAggregate   = "Aggregate"
	CollectionSystem      = "System"
	CollectionMultiStruct = "MultiStruct"
)

// CollectionPartDitch is the only supported part type.
const CollectionPartDitch = "Ditch"

// Collection maps a modeled structure to the real structures it represents.
// Ditch collections hold a single part list that applies to every year.
type Collection struct {
	Type     string     `json:"type"`
	PartType string     `json:"part_type"`
	Years    []int      `json:"years"`
	Parts    [][]string `json:"parts"`
}

// NewCollection creates a ditch collection of the given type with one part list.
func NewCollection(collectionType string, partIDs []string) *Collection {
	return &Collection{
		Type:     collectionType,
		PartType: CollectionPartDitch,
		Years:    []int{0},
		Parts:    [][]string{slices.Clone(partIDs)},
	}
}

// PartIDs returns the part ids for a year. Ditch collections return the
// first and only list regardless of year; nil when no list is defined.
func (c *Collection) PartIDs(_ int) []string {
	if c == nil || len(c.Parts) == 0 {
		return nil
	}
	return c.Parts[0]
}

// SetPartIDs replaces the part list; the list applies to all years.
func (c *Collection) SetPartIDs(ids []string) {
	c.Years = []int{0}
	c.Parts = [][]string{slices.Clone(ids)}
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := &Collection{
		Type:     c.Type,
		PartType: c.PartType,
		Years:    slices.Clone(c.Years),
		Parts:    make([][]string, len(c.Parts)),
	}
	for i, p := range c.Parts {
		out.Parts[i] = slices.Clone(p)
	}
	return out
}
