package receipt

import (
	"cmp"
	"slices"
)

// SortRecords orders records by (purchase date, order number) ascending.
//
// Both keys compare lexicographically, which orders dates correctly because
// a valid date is always zero padded "yyyy/mm/dd". Records whose date is
// missing come after every dated record; within one date, a missing order
// number comes after every present one. Records with equal keys keep their
// relative order.
func SortRecords(records []Record) {
	slices.SortStableFunc(records, compareRecords)
}

func compareRecords(a, b Record) int {
	if c := compareKey(a.PurchaseDate, b.PurchaseDate); c != 0 {
		return c
	}
	return compareKey(a.OrderNumber, b.OrderNumber)
}

// compareKey orders ok fields by value and places missing or unset fields
// last.
func compareKey(a, b Field) int {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok && bok:
		return cmp.Compare(av, bv)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}
