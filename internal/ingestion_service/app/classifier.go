package app

import (
	"regexp"
	"strings"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// thirdPartyAccountRe matches the "on your <wallet> account" phrase of
// third-party-initiated notifications; the wallet name varies by product and
// may span several words ("MOMO", "mobile money").
var thirdPartyAccountRe = regexp.MustCompile(`on your [\w ]+ account`)

type classificationRule struct {
	category domain.Category
	matches  func(body string) bool
}

// classificationRules is evaluated top to bottom, first match wins. The order
// is the classifier's entire tie-break policy and is a contract, not an
// implementation detail: a body that both announces a receipt "from" someone
// and carries an external transaction id is Incoming Money, because that rule
// is evaluated first.
var classificationRules = []classificationRule{
	{domain.CategoryIncomingMoney, containsAll("received", "from")},
	{domain.CategoryPaymentsToCodeHolders, containsAll("payment of", "to")},
	{domain.CategoryTransfersToMobileNumbers, containsAll("transferred to", "from")},
	{domain.CategoryBankDeposits, containsAll("bank deposit")},
	{domain.CategoryAirtimeBillPayments, containsAll("Airtime")},
	{domain.CategoryCashPowerBillPayments, containsAll("Cash Power")},
	{domain.CategoryThirdPartyInitiated, func(body string) bool {
		return strings.Contains(body, "by") && thirdPartyAccountRe.MatchString(body)
	}},
	{domain.CategoryWithdrawalsFromAgents, containsAll("withdrawn", "agent")},
	{domain.CategoryBankTransfers, containsAll("External Transaction Id")},
	{domain.CategoryBundlePurchases, containsAnyFold("Bundles and Packs", "internet", "voice bundle")},
}

func containsAll(substrings ...string) func(string) bool {
	return func(body string) bool {
		for _, s := range substrings {
			if !strings.Contains(body, s) {
				return false
			}
		}
		return true
	}
}

func containsAnyFold(substrings ...string) func(string) bool {
	lowered := make([]string, len(substrings))
	for i, s := range substrings {
		lowered[i] = strings.ToLower(s)
	}
	return func(body string) bool {
		body = strings.ToLower(body)
		for _, s := range lowered {
			if strings.Contains(body, s) {
				return true
			}
		}
		return false
	}
}

// classifyBody assigns exactly one category to a non-empty message body.
// Bodies matching no rule are CategoryOther; absent bodies never reach the
// classifier (the record builder marks those CategoryUnknown).
func classifyBody(body string) domain.Category {
	for _, rule := range classificationRules {
		if rule.matches(body) {
			return rule.category
		}
	}
	return domain.CategoryOther
}
