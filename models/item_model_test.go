package models

import "testing"

func TestItemStatus(t *testing.T) {
	cases := []struct {
		name         string
		reorderPoint int
		initialStock int
		totalStock   int
		want         StockStatus
	}{
		{"zero stock", 20, 100, 0, StatusOutOfStock},
		{"negative stock reads as out", 20, 100, -3, StatusOutOfStock},
		{"below reorder point", 20, 0, 19, StatusLowStock},
		{"at reorder point", 20, 0, 20, StatusInStock},
		{"well stocked", 20, 0, 150, StatusInStock},
		// 20% of a 200 baseline is 40, which beats the reorder point.
		{"baseline threshold wins", 20, 200, 39, StatusLowStock},
		{"at baseline threshold", 20, 200, 40, StatusInStock},
		// 20% of 99 is 19.8; 19 is under it, 20 is over it. The fractional
		// boundary must not be truncated away.
		{"under fractional baseline threshold", 0, 99, 19, StatusLowStock},
		{"over fractional baseline threshold", 0, 99, 20, StatusInStock},
		// A higher reorder point still wins over a small baseline.
		{"reorder point wins over baseline", 50, 100, 45, StatusLowStock},
		// No baseline configured: only the reorder point applies.
		{"no baseline no reorder point", 0, 0, 1, StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := Item{ReorderPoint: tc.reorderPoint, InitialStock: tc.initialStock}
			if got := item.Status(tc.totalStock); got != tc.want {
				t.Errorf("Status(%d) = %q, want %q", tc.totalStock, got, tc.want)
			}
		})
	}
}

func TestLocationKindValid(t *testing.T) {
	for _, kind := range []LocationKind{LocationWarehouse, LocationJob, LocationVehicle} {
		if !kind.Valid() {
			t.Errorf("%q should be valid", kind)
		}
	}
	if LocationKind("garage").Valid() {
		t.Error("unknown kind should be invalid")
	}
	if LocationKind("").Valid() {
		t.Error("empty kind should be invalid")
	}
}

func TestRMAStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to RMAStatus }{
		{RMAPending, RMAApproved},
		{RMAPending, RMARejected},
		{RMAApproved, RMACompleted},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransition(tr.to) {
			t.Errorf("%q -> %q should be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to RMAStatus }{
		{RMAPending, RMACompleted},
		{RMAApproved, RMARejected},
		{RMARejected, RMAApproved},
		{RMACompleted, RMAPending},
	}
	for _, tr := range denied {
		if tr.from.CanTransition(tr.to) {
			t.Errorf("%q -> %q should be denied", tr.from, tr.to)
		}
	}
}
