package receipt

import "strings"

// =============================================================================
// PAYMENT BREAKDOWN
// =============================================================================
//
// The breakdown section lists one payment method per line:
//
//   \n支払い内訳\n
//   PayPay（残高） 39,000円\n
//   商品券 1,000円\n
//   税率別内訳 ...
//
// =============================================================================

const (
	anchorBreakdownStart = "\n支払い内訳\n"
	anchorBreakdownEnd   = "税率別内訳"

	// genericCertificate is the label the receipt prints for the
	// marketplace's own gift certificate.
	genericCertificate = "商品券"

	// brandedCertificate is the label written to the table instead.
	brandedCertificate = Marketplace + genericCertificate
)

// ParsePayments extracts up to MaxPayments entries from the breakdown
// section of text.
//
// RETURNS:
//   - The payment slots. When the section is absent every slot is missing.
//     Slots past the number of listed lines are unset.
//   - The number of listed lines past MaxPayments, which are ignored.
func ParsePayments(text string) ([MaxPayments]PaymentEntry, int) {
	var slots [MaxPayments]PaymentEntry

	section, ok := between([]string{anchorBreakdownStart}, anchorBreakdownEnd)(text)
	if !ok {
		for i := range slots {
			slots[i] = PaymentEntry{Method: Missing(), Amount: Missing()}
		}
		return slots, 0
	}

	count := strings.Count(section, lineBreak)
	lines := strings.Split(section, lineBreak)
	for i := 0; i < MaxPayments && i < count; i++ {
		slots[i] = parsePaymentLine(lines[i])
	}

	dropped := 0
	if count > MaxPayments {
		dropped = count - MaxPayments
	}
	return slots, dropped
}

// parsePaymentLine splits "method amount円" on the first space.
func parsePaymentLine(line string) PaymentEntry {
	method, rest, found := strings.Cut(line, " ")
	if !found {
		return PaymentEntry{Method: Missing(), Amount: Missing()}
	}

	entry := PaymentEntry{Method: Missing(), Amount: Missing()}
	if method != "" {
		if method == genericCertificate {
			method = brandedCertificate
		}
		entry.Method = Value(method)
	}

	token, _, _ := strings.Cut(strings.TrimLeft(rest, " "), " ")
	if amount, ok := digitsOnly(token); ok {
		entry.Amount = Value(amount)
	}
	return entry
}
