package app

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const bodyDateLayout = "2006-01-02 15:04:05"

// readableDateLayouts covers the formats archive exports use for the
// human-formatted timestamp attribute.
var readableDateLayouts = []string{
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
}

var (
	dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

	transactionIDRe         = regexp.MustCompile(`(?i)transaction id\s*:?\s*(\d+)`)
	transactionIDFallbackRe = regexp.MustCompile(`(?i)txid\s*:?\s*(\d+)`)
	externalTransactionIDRe = regexp.MustCompile(`(?i)external transaction id\s*:?\s*([\w-]+)`)
)

// currencyPatterns holds the money extractors compiled for one currency
// marker. Amount-like tokens are only extracted when they carry the marker of
// the deployment, so the marker and the currency stamped onto records always
// come from the same configured code.
type currencyPatterns struct {
	amountRe  *regexp.Regexp
	feeRe     *regexp.Regexp
	balanceRe *regexp.Regexp
}

func newCurrencyPatterns(marker string) currencyPatterns {
	escaped := regexp.QuoteMeta(marker)
	return currencyPatterns{
		amountRe:  regexp.MustCompile(`(\d[\d,]*)\s*` + escaped),
		feeRe:     regexp.MustCompile(`(?i)fee (?:was|paid)\s*:?\s*(\d[\d,]*)\s*` + escaped),
		balanceRe: regexp.MustCompile(`(?i)balance\s*:?\s*(\d[\d,]*)\s*` + escaped),
	}
}

// Every extractor in this file is a pure function from body text to an
// optional value. Absence of a match is nil, never an error: defaults for
// missing fields are the record builder's concern.

func (p currencyPatterns) extractAmount(body string) *int64 {
	return extractCurrencyAmount(p.amountRe, body)
}

func (p currencyPatterns) extractFee(body string) *int64 {
	return extractCurrencyAmount(p.feeRe, body)
}

func (p currencyPatterns) extractBalance(body string) *int64 {
	return extractCurrencyAmount(p.balanceRe, body)
}

// extractCurrencyAmount parses the first capture group of re as an integer
// amount with optional thousands separators.
func extractCurrencyAmount(re *regexp.Regexp, body string) *int64 {
	matches := re.FindStringSubmatch(body)
	if matches == nil {
		return nil
	}
	value, err := strconv.ParseInt(strings.ReplaceAll(matches[1], ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// extractDate finds the first YYYY-MM-DD HH:MM:SS token in the body and
// interprets it as UTC. No timezone conversion is applied.
func extractDate(body string) *time.Time {
	token := dateRe.FindString(body)
	if token == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(bodyDateLayout, token, time.UTC)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseReadableDate parses the archive's readable_date attribute, again as UTC.
func parseReadableDate(readableDate string) *time.Time {
	trimmed := strings.TrimSpace(readableDate)
	if trimmed == "" {
		return nil
	}
	for _, layout := range readableDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return &parsed
		}
	}
	return nil
}

func extractTransactionID(body string) *string {
	// The external id label embeds the plain "Transaction Id" label, so blank
	// out external id matches before looking for the plain one.
	cleaned := externalTransactionIDRe.ReplaceAllString(body, "")

	if matches := transactionIDRe.FindStringSubmatch(cleaned); matches != nil {
		return &matches[1]
	}
	if matches := transactionIDFallbackRe.FindStringSubmatch(cleaned); matches != nil {
		return &matches[1]
	}
	return nil
}

func extractExternalTransactionID(body string) *string {
	matches := externalTransactionIDRe.FindStringSubmatch(body)
	if matches == nil {
		return nil
	}
	return &matches[1]
}
