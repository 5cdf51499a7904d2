// =============================================================================
// Receipt Analyzer - Field Extractor
// =============================================================================
//
// This file turns the normalized text of one receipt into a Record.
//
// EXTRACTION MODEL:
//   Each primary field is described by one entry of fieldRules:
//     (name, locator, post-processor, assignment)
//   A single loop applies every rule. A rule that cannot locate its anchors
//   or whose post-processor rejects the value yields a missing field. Rules
//   are independent: one failed field never stops the others.
//
// ANCHORS:
//   注文番号 ... の領収書        -> order number
//   の領収書 ... 様 ... \n       -> store name
//   注文日:  ... \n              -> purchase date (yyyy年mm月dd日)
//   合計金額(税込)  ... 円        -> total amount
//   注文商品 価格\n ... \n単価(税込) -> order items
//
// =============================================================================

package receipt

import (
	"regexp"
	"strings"
)

// =============================================================================
// ANCHORS
// =============================================================================

const (
	anchorOrderNumber  = "注文番号"
	anchorReceiptTitle = "の領収書"
	anchorHonorific    = "様"
	anchorOrderDate    = "注文日: "
	anchorTotal        = "合計金額(税込) "
	anchorTotalSpaced  = "合計金額( 税込) "
	anchorYen          = "円"
	anchorItemsStart   = "注文商品 価格\n"
	anchorItemsEnd     = "\n単価(税込)"
	lineBreak          = "\n"
)

// =============================================================================
// RULE TABLE
// =============================================================================

// locator finds the raw text of a field. It reports false when the anchors
// are absent.
type locator func(text string) (string, bool)

// postProcessor turns the located text into the field value. It reports
// false when the located text is not a valid value.
type postProcessor func(raw string) (string, bool)

type fieldRule struct {
	name   string
	locate locator
	post   postProcessor
	assign func(r *Record, f Field)
}

// apply runs the rule against text.
func (rule fieldRule) apply(text string) Field {
	raw, ok := rule.locate(text)
	if !ok {
		return Missing()
	}
	if rule.post == nil {
		return Value(raw)
	}
	v, ok := rule.post(raw)
	if !ok {
		return Missing()
	}
	return Value(v)
}

// fieldRules lists the primary fields in extraction order.
var fieldRules = []fieldRule{
	{
		name:   "order_number",
		locate: between([]string{anchorOrderNumber}, anchorReceiptTitle),
		assign: func(r *Record, f Field) { r.OrderNumber = f },
	},
	{
		name:   "store_name",
		locate: locateStoreName,
		assign: func(r *Record, f Field) { r.StoreName = f },
	},
	{
		name:   "purchase_date",
		locate: between([]string{anchorOrderDate}, lineBreak),
		post:   normalizeDate,
		assign: func(r *Record, f Field) { r.PurchaseDate = f },
	},
	{
		name:   "total_amount",
		locate: between([]string{anchorTotal, anchorTotalSpaced}, anchorYen),
		post:   digitsOnly,
		assign: func(r *Record, f Field) { r.TotalAmount = f },
	},
	{
		name:   "order_items",
		locate: between([]string{anchorItemsStart}, anchorItemsEnd),
		assign: func(r *Record, f Field) { r.OrderItems = f },
	},
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract parses the normalized text of one receipt.
//
// PARAMETERS:
//   - text: The normalized document text.
//
// RETURNS:
//   - A Result whose record has every primary field set (ok or missing) and
//     whose HadError flag is true when any field is missing.
//
// The record's SourceFile and FileName are left for the caller.
func Extract(text string) Result {
	rec := Record{Marketplace: Marketplace}

	for _, rule := range fieldRules {
		rule.assign(&rec, rule.apply(text))
	}
	rec.PurchaseMonth = monthOf(rec.PurchaseDate)

	payments, dropped := ParsePayments(text)
	rec.Payments = payments

	return Result{
		Record:          rec,
		HadError:        rec.HasMissing(),
		DroppedPayments: dropped,
	}
}

// =============================================================================
// LOCATORS
// =============================================================================

// between returns a locator for the text following the first start anchor
// (tried in priority order) up to the next end anchor. The end anchor must
// follow the start anchor.
func between(starts []string, end string) locator {
	return func(text string) (string, bool) {
		for _, start := range starts {
			i := strings.Index(text, start)
			if i < 0 {
				continue
			}
			v, _, found := strings.Cut(text[i+len(start):], end)
			if found {
				return v, true
			}
		}
		return "", false
	}
}

// locateStoreName finds the shop name on the addressee line that follows
// the receipt title. The shop normally follows the honorific on the same
// line; when the honorific ends the line, the text before it is used.
func locateStoreName(text string) (string, bool) {
	i := strings.Index(text, anchorReceiptTitle)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(anchorReceiptTitle):]

	j := strings.Index(rest, anchorHonorific)
	if j < 0 {
		return "", false
	}

	tail, _, found := strings.Cut(rest[j+len(anchorHonorific):], lineBreak)
	if !found {
		return "", false
	}
	if tail != "" {
		return tail, true
	}

	lineStart := strings.LastIndex(rest[:j], lineBreak) + 1
	head := strings.TrimSpace(rest[lineStart:j])
	if head == "" {
		return "", false
	}
	return head, true
}

// =============================================================================
// POST-PROCESSORS
// =============================================================================

var (
	dateReplacer   = strings.NewReplacer("年", "/", "月", "/", "日", "")
	amountReplacer = strings.NewReplacer(",", "", "¥", "", anchorYen, "")
	paddedDate     = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
)

// normalizeDate converts "2024年03月05日" to "2024/03/05". Dates that are
// not zero padded are rejected.
func normalizeDate(raw string) (string, bool) {
	d := dateReplacer.Replace(strings.TrimSpace(raw))
	if !paddedDate.MatchString(d) {
		return "", false
	}
	return d, true
}

// digitsOnly strips thousands separators and currency markers from an
// amount and rejects anything that is not a plain digit string.
func digitsOnly(raw string) (string, bool) {
	v := amountReplacer.Replace(strings.TrimSpace(raw))
	if v == "" {
		return "", false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return "", false
		}
	}
	return v, true
}

// monthOf derives "yyyy/mm" from a purchase date field.
func monthOf(date Field) Field {
	d, ok := date.Get()
	if !ok {
		return Missing()
	}
	parts := strings.SplitN(d, "/", 3)
	if len(parts) < 2 {
		return Missing()
	}
	return Value(parts[0] + "/" + parts[1])
}
