// Package extract holds the pure text-normalisation and entity-extraction
// helpers the classifier builds on. Extraction misses are not errors: every
// function reports absence through its second return value.
package extract

import (
	"regexp"
	"strings"
)

// quotedPatterns match an explicitly quoted phrase of at least two
// characters, straight or curly, double or single. Quotation always wins
// over heuristic matching, so these are tried first by both extractors.
var quotedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]{2,})"`),
	regexp.MustCompile(`'([^']{2,})'`),
	regexp.MustCompile(`\x{201C}([^\x{201D}]{2,})\x{201D}`),
	regexp.MustCompile(`\x{2018}([^\x{2019}]{2,})\x{2019}`),
}

var (
	// poPattern matches "po", "po-", "po_", "po#" (optionally spaced)
	// followed by a digit-led run of alphanumerics and hyphens.
	poPattern = regexp.MustCompile(`(?i)\bpo[-_#\s]*(\d[a-z0-9-]*)`)

	// hashPattern matches a bare "#" followed by three or more digits.
	hashPattern = regexp.MustCompile(`#(\d{3,})`)

	// supplierPattern matches "supplier"/"vendor" optionally followed by a
	// connective, then a run of name characters.
	supplierPattern = regexp.MustCompile(`(?i)\b(?:supplier|vendor)s?\s+(?:(?:named|called|for)\s+)?([a-z0-9&][a-z0-9&'\x{2019} -]*)`)
)

// Sanitize collapses consecutive whitespace to single spaces and trims.
func Sanitize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func quoted(text string) (string, bool) {
	for _, p := range quotedPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return Sanitize(m[1]), true
		}
	}
	return "", false
}

// PurchaseOrderQuery extracts a candidate purchase-order reference from free
// text: an explicitly quoted phrase first, then a PO-prefixed token, then a
// bare #-number.
func PurchaseOrderQuery(text string) (string, bool) {
	if q, ok := quoted(text); ok {
		return q, true
	}
	if m := poPattern.FindStringSubmatch(text); m != nil {
		return Sanitize(m[1]), true
	}
	if m := hashPattern.FindStringSubmatch(text); m != nil {
		return Sanitize(m[1]), true
	}
	return "", false
}

// SupplierQuery extracts a candidate supplier name from free text: an
// explicitly quoted phrase first, then a supplier/vendor mention.
func SupplierQuery(text string) (string, bool) {
	if q, ok := quoted(text); ok {
		return q, true
	}
	if m := supplierPattern.FindStringSubmatch(text); m != nil {
		if name := Sanitize(m[1]); name != "" {
			return name, true
		}
	}
	return "", false
}
