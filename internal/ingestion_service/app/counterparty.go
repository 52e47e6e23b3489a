package app

import (
	"regexp"
	"strings"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

var (
	// Sender of an incoming transfer: text between "from " and the next " (".
	senderRe = regexp.MustCompile(`from (.+?)\s*\(`)
	// Receiver of a payment or transfer: text between "to " and the next
	// digit run or "(".
	receiverRe = regexp.MustCompile(`to (.+?)\s*[\d(]`)
)

// resolveCounterparty extracts at most one of sender/receiver for the given
// body and already-assigned category. Categories without a counterparty
// pattern yield nil for both.
func resolveCounterparty(body string, category domain.Category) (sender, receiver *string) {
	switch category {
	case domain.CategoryIncomingMoney:
		sender = firstTrimmedSubmatch(senderRe, body)
	case domain.CategoryPaymentsToCodeHolders, domain.CategoryTransfersToMobileNumbers:
		receiver = firstTrimmedSubmatch(receiverRe, body)
	}
	return sender, receiver
}

func firstTrimmedSubmatch(re *regexp.Regexp, body string) *string {
	matches := re.FindStringSubmatch(body)
	if matches == nil {
		return nil
	}
	trimmed := strings.TrimSpace(matches[1])
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
