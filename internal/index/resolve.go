package index

import (
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/iudanet/statemod/internal/models"
)

// Reference is an id reference that did not resolve.
type Reference struct {
	OwnerID  string
	TargetID string
	Position int
}

// ConnectAllRights attaches each right to the diversion whose id matches the
// right's structure id, ignoring case. Existing right lists are replaced.
// Rights that match no diversion are returned.
func ConnectAllRights(divs []*models.Diversion, rights []*models.DiversionRight) []*models.DiversionRight {
	byStructure := make(map[string][]*models.DiversionRight)
	for _, r := range rights {
		if r == nil {
			continue
		}
		key := strings.ToLower(r.Cgoto())
		byStructure[key] = append(byStructure[key], r)
	}

	connected := set.New[*models.DiversionRight](len(rights))
	for _, d := range divs {
		d.DisconnectRights()
		for _, r := range byStructure[strings.ToLower(d.ID())] {
			d.AddRight(r)
			connected.Insert(r)
		}
	}

	var orphans []*models.DiversionRight
	for _, r := range rights {
		if r != nil && !connected.Contains(r) {
			orphans = append(orphans, r)
		}
	}
	return orphans
}

// DelayTable returns the delay table a return flow refers to.
func DelayTable(tables *Index[*models.DelayTable], rf *models.ReturnFlow) (*models.DelayTable, bool) {
	return tables.Get(rf.DelayTableID())
}

// UnresolvedReturnFlows lists the return flows whose delay table is not in tables.
func UnresolvedReturnFlows(divs []*models.Diversion, tables []*models.DelayTable) []Reference {
	ix := New(tables)
	var out []Reference
	for _, d := range divs {
		for i, rf := range d.ReturnFlows() {
			if _, ok := DelayTable(ix, rf); !ok {
				out = append(out, Reference{OwnerID: d.ID(), TargetID: rf.DelayTableID(), Position: i})
			}
		}
	}
	return out
}

// UnresolvedAssignments lists the assignment entries whose delay table is not in tables.
func UnresolvedAssignments(dlas []*models.DelayTableAssignment, tables []*models.DelayTable) []Reference {
	ix := New(tables)
	var out []Reference
	for _, a := range dlas {
		for i := range a.NumDelayTables() {
			id := a.DelayTableID(i)
			if !ix.Has(id) {
				out = append(out, Reference{OwnerID: a.ID(), TargetID: id, Position: i})
			}
		}
	}
	return out
}
