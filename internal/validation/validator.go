// =============================================================================
// Receipt Analyzer - Record Checks
// =============================================================================
//
// This module reports what is wrong with an extracted record so that the
// run log says *which* fields need manual review. It never changes a record.
//
// CHECKS:
//   1. Missing fields (extraction fell back to ERROR)
//   2. Date invariants (zero padded yyyy/mm/dd, month is the date prefix)
//   3. Amount invariants (ASCII digits only)
//   4. Payment slot layout (first slot used, no used slot after an unused one)
//   5. File name synthesis (missing when the record cannot be renamed)
//   6. Dropped breakdown entries (more than three payment lines)
//
// SEVERITY:
//   - "error"   : the field is missing or breaks an invariant
//   - "warning" : the record is usable but lost information
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ginjaninja78/receipt-analyzer/internal/receipt"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single finding about a record.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the table column the finding is about.
	Field string

	// Value is the displayed value of the field.
	Value string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

var (
	datePattern  = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Check inspects an extraction result.
//
// PARAMETERS:
//   - res: The extraction result to inspect.
//
// RETURNS:
//   - The findings in table column order. Empty when the record is clean.
func Check(res receipt.Result) []*ValidationError {
	rec := res.Record
	var errs []*ValidationError

	add := func(severity, field string, f receipt.Field, msg string) {
		errs = append(errs, &ValidationError{
			Severity: severity,
			Field:    field,
			Value:    f.String(),
			Message:  msg,
		})
	}

	// Missing primary fields.
	primary := []struct {
		col string
		f   receipt.Field
	}{
		{receipt.ColOrderNumber, rec.OrderNumber},
		{receipt.ColStoreName, rec.StoreName},
		{receipt.ColPurchaseDate, rec.PurchaseDate},
		{receipt.ColPurchaseMonth, rec.PurchaseMonth},
		{receipt.ColTotalAmount, rec.TotalAmount},
	}
	for _, p := range primary {
		if !p.f.OK() {
			add(SeverityError, p.col, p.f, "anchors not found")
		}
	}

	// Date invariants.
	if date, ok := rec.PurchaseDate.Get(); ok {
		if !datePattern.MatchString(date) {
			add(SeverityError, receipt.ColPurchaseDate, rec.PurchaseDate, "date is not zero padded yyyy/mm/dd")
		}
		if month, ok := rec.PurchaseMonth.Get(); ok && !strings.HasPrefix(date, month+"/") {
			add(SeverityError, receipt.ColPurchaseMonth, rec.PurchaseMonth, "month is not the prefix of the date")
		}
	}

	// Amount invariants.
	if total, ok := rec.TotalAmount.Get(); ok && !digitPattern.MatchString(total) {
		add(SeverityError, receipt.ColTotalAmount, rec.TotalAmount, "amount is not a digit string")
	}

	// Payment slots.
	if !rec.Payments[0].Used() {
		add(SeverityError, receipt.ColMethod1, rec.Payments[0].Method, "breakdown lists no payment")
	}
	methodCols := []string{receipt.ColMethod1, receipt.ColMethod2, receipt.ColMethod3}
	amountCols := []string{receipt.ColAmount1, receipt.ColAmount2, receipt.ColAmount3}
	sawUnused := false
	for i, p := range rec.Payments {
		if !p.Used() {
			sawUnused = true
			continue
		}
		if sawUnused {
			add(SeverityError, methodCols[i], p.Method, "payment slot used after an unused slot")
		}
		if !p.Method.OK() {
			add(SeverityError, methodCols[i], p.Method, "payment method not parsed")
		}
		if amount, ok := p.Amount.Get(); !ok {
			add(SeverityError, amountCols[i], p.Amount, "payment amount not parsed")
		} else if !digitPattern.MatchString(amount) {
			add(SeverityError, amountCols[i], p.Amount, "amount is not a digit string")
		}
	}

	if !rec.OrderItems.OK() {
		add(SeverityError, receipt.ColOrderItems, rec.OrderItems, "anchors not found")
	}

	if rec.FileName.IsMissing() {
		add(SeverityError, receipt.ColFileName, rec.FileName, "record cannot be renamed")
	}

	if res.DroppedPayments > 0 {
		errs = append(errs, &ValidationError{
			Severity: SeverityWarning,
			Field:    receipt.ColMethod3,
			Message:  fmt.Sprintf("%d payment line(s) after the third were ignored", res.DroppedPayments),
		})
	}

	return errs
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// Fields returns the distinct field names of the findings, in order.
func Fields(errs []*ValidationError) []string {
	seen := make(map[string]bool, len(errs))
	var fields []string
	for _, e := range errs {
		if seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		fields = append(fields, e.Field)
	}
	return fields
}

// CountBySeverity returns the number of findings with the given severity.
func CountBySeverity(errs []*ValidationError, severity string) int {
	n := 0
	for _, e := range errs {
		if e.Severity == severity {
			n++
		}
	}
	return n
}
