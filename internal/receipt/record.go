// =============================================================================
// Receipt Analyzer - Record Model
// =============================================================================
//
// This file defines the purchase record extracted from one receipt document.
//
// FIELD STATES:
//   Every field is a Field value with one of three states:
//   - ok       : a real extracted value
//   - missing  : extraction failed; displayed as "ERROR" in the table
//   - unset    : the zero value; displayed as "" and only used for payment
//                slots the receipt does not use
//
// The display sentinels exist only at the output boundary (Field.String).
// Inside the program a missing field can never be confused with a value.
//
// =============================================================================

package receipt

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// Marketplace is the only marketplace layout this package understands.
	Marketplace = "ヤフショ"

	// ErrorSentinel is how a missing field is displayed.
	ErrorSentinel = "ERROR"

	// MaxPayments is the number of payment slots carried by a record.
	MaxPayments = 3
)

// =============================================================================
// FIELD
// =============================================================================

type fieldState uint8

const (
	fieldUnset fieldState = iota
	fieldOK
	fieldMissing
)

// Field is a single extracted value.
type Field struct {
	value string
	state fieldState
}

// Value returns an ok field holding v.
func Value(v string) Field {
	return Field{value: v, state: fieldOK}
}

// Missing returns a field whose extraction failed.
func Missing() Field {
	return Field{state: fieldMissing}
}

// Get returns the value and whether the field is ok.
func (f Field) Get() (string, bool) {
	return f.value, f.state == fieldOK
}

// OK reports whether the field holds a real value.
func (f Field) OK() bool { return f.state == fieldOK }

// IsMissing reports whether extraction of the field failed.
func (f Field) IsMissing() bool { return f.state == fieldMissing }

// IsSet reports whether the field is ok or missing.
func (f Field) IsSet() bool { return f.state != fieldUnset }

// String returns the display form used in tables and logs.
func (f Field) String() string {
	switch f.state {
	case fieldOK:
		return f.value
	case fieldMissing:
		return ErrorSentinel
	default:
		return ""
	}
}

// =============================================================================
// RECORD
// =============================================================================

// PaymentEntry is one (method, amount) pair of the payment breakdown.
// An unused slot is the zero value.
type PaymentEntry struct {
	Method Field
	Amount Field
}

// Used reports whether the slot holds an entry (parsed or failed).
func (p PaymentEntry) Used() bool {
	return p.Method.IsSet() || p.Amount.IsSet()
}

// OK reports whether both parts of the entry were parsed.
func (p PaymentEntry) OK() bool {
	return p.Method.OK() && p.Amount.OK()
}

// Record holds the data extracted from one receipt document.
type Record struct {
	// OrderNumber is the marketplace order number, e.g. "store-1234567".
	OrderNumber Field

	// Marketplace is always the Marketplace constant.
	Marketplace string

	// StoreName is the shop that issued the receipt.
	StoreName Field

	// PurchaseDate is the order date as zero padded "yyyy/mm/dd".
	PurchaseDate Field

	// PurchaseMonth is the "yyyy/mm" prefix of PurchaseDate.
	PurchaseMonth Field

	// TotalAmount is the tax-inclusive total in yen, ASCII digits only.
	TotalAmount Field

	// Payments holds up to MaxPayments breakdown entries in receipt order.
	Payments [MaxPayments]PaymentEntry

	// OrderItems is the raw item block of the receipt.
	OrderItems Field

	// SourceFile is the input document's file name.
	SourceFile string

	// FileName is the synthesized file name, missing when the record is
	// not valid enough to be renamed.
	FileName Field
}

// primaryFields returns the fields that must always be set.
func (r *Record) primaryFields() []Field {
	return []Field{
		r.OrderNumber,
		r.StoreName,
		r.PurchaseDate,
		r.PurchaseMonth,
		r.TotalAmount,
		r.OrderItems,
	}
}

// HasMissing reports whether any extracted field of the record is missing.
// The synthesized file name is not considered.
func (r *Record) HasMissing() bool {
	for _, f := range r.primaryFields() {
		if f.IsMissing() {
			return true
		}
	}
	for _, p := range r.Payments {
		if p.Method.IsMissing() || p.Amount.IsMissing() {
			return true
		}
	}
	return false
}

// Result pairs a record with its error flag.
type Result struct {
	Record Record

	// HadError is true when any field fell back to missing.
	HadError bool

	// DroppedPayments counts breakdown lines past MaxPayments. They are not
	// part of the record.
	DroppedPayments int
}
