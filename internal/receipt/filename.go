package receipt

import "strings"

// =============================================================================
// FILE NAME SYNTHESIS
// =============================================================================
//
// NAMING CONVENTION:
//   yyyy-mm-dd_領収書_仕入_<store>_<method1><amount1>円
//     [_<method2><amount2>円][_<method3><amount3>円]_<order number>.pdf
//
// =============================================================================

const (
	// fileNameTag is the fixed bookkeeping tag placed after the date.
	fileNameTag = "領収書_仕入"

	fileNameExt = ".pdf"
)

// SynthesizeFileName builds the canonical file name for a record.
//
// RETURNS:
//   - An ok field holding the name, or a missing field when the order
//     number, store, date, total or any used payment slot is missing, when
//     the first payment slot is unused, or when the name would contain a
//     path separator.
//
// The result depends only on the record, so calling it twice on the same
// record always yields the same field.
func SynthesizeFileName(r Record) Field {
	order, ok := r.OrderNumber.Get()
	if !ok {
		return Missing()
	}
	store, ok := r.StoreName.Get()
	if !ok {
		return Missing()
	}
	date, ok := r.PurchaseDate.Get()
	if !ok {
		return Missing()
	}
	if !r.TotalAmount.OK() {
		return Missing()
	}
	if !r.Payments[0].OK() {
		return Missing()
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(date, "/", "-"))
	b.WriteString("_" + fileNameTag + "_")
	b.WriteString(store)

	for _, p := range r.Payments {
		if !p.Used() {
			continue
		}
		if !p.OK() {
			return Missing()
		}
		method, _ := p.Method.Get()
		amount, _ := p.Amount.Get()
		b.WriteString("_" + method + amount + anchorYen)
	}

	b.WriteString("_" + order + fileNameExt)

	name := b.String()
	if strings.ContainsAny(name, "/\\\x00") {
		return Missing()
	}
	return Value(name)
}
