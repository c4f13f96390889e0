package orders

import (
	"sort"

	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
)

// reservationLine pairs an inventory item id with a reserved quantity.
type reservationLine struct {
	ItemID   uint
	Quantity int
}

// reservationChange describes a quantity move on a line present on both sides.
type reservationChange struct {
	ItemID uint
	From   int
	To     int
}

// Delta is the stock adjustment implied by the change: positive means more
// stock must be taken, negative means stock is returned.
func (c reservationChange) Delta() int {
	return c.To - c.From
}

// reservationDiff is the three-way reconciliation between an order's current
// reservation set and the requested one, keyed by inventory item id.
type reservationDiff struct {
	Added   []reservationLine
	Changed []reservationChange
	Removed []reservationLine
}

// normalizeLines folds the requested lines into a map keyed by inventory item
// id. Duplicate ids within one request are merged by summing quantities.
func normalizeLines(lines []OrderLineInput) (map[uint]int, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line item")
	}
	requested := make(map[uint]int, len(lines))
	for _, line := range lines {
		if line.InventoryItemID == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item is missing an inventory item reference")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"ordered quantity for item %d must be positive", line.InventoryItemID)
		}
		requested[line.InventoryItemID] += line.Quantity
	}
	return requested, nil
}

// diffReservations computes the keyed-map diff between the existing and the
// requested reservation sets. Output slices are ordered by item id so the
// apply step touches rows deterministically.
func diffReservations(existing, requested map[uint]int) reservationDiff {
	var diff reservationDiff

	for itemID, qty := range requested {
		prior, ok := existing[itemID]
		switch {
		case !ok:
			diff.Added = append(diff.Added, reservationLine{ItemID: itemID, Quantity: qty})
		case prior != qty:
			diff.Changed = append(diff.Changed, reservationChange{ItemID: itemID, From: prior, To: qty})
		}
	}

	for itemID, qty := range existing {
		if _, ok := requested[itemID]; !ok {
			diff.Removed = append(diff.Removed, reservationLine{ItemID: itemID, Quantity: qty})
		}
	}

	sort.Slice(diff.Added, func(i, j int) bool { return diff.Added[i].ItemID < diff.Added[j].ItemID })
	sort.Slice(diff.Changed, func(i, j int) bool { return diff.Changed[i].ItemID < diff.Changed[j].ItemID })
	sort.Slice(diff.Removed, func(i, j int) bool { return diff.Removed[i].ItemID < diff.Removed[j].ItemID })

	return diff
}

// sortedItemIDs returns the map's keys in ascending order.
func sortedItemIDs(requested map[uint]int) []uint {
	ids := make([]uint, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
