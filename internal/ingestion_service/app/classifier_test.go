package app

import (
	"testing"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBody(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected domain.Category
	}{
		{
			name:     "incoming money",
			body:     "You have received 2000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51.",
			expected: domain.CategoryIncomingMoney,
		},
		{
			name:     "payment to code holder",
			body:     "TxId: 73214484437. Your payment of 1,000 RWF to Jane Smith 12845 has been completed at 2024-05-10 16:31:39.",
			expected: domain.CategoryPaymentsToCodeHolders,
		},
		{
			name:     "transfer to mobile number",
			body:     "*165*S*10000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-11 20:34:47.",
			expected: domain.CategoryTransfersToMobileNumbers,
		},
		{
			name:     "bank deposit",
			body:     "*113*R*A bank deposit of 40000 RWF has been added at 2024-05-11 18:43:49. Your NEW BALANCE :40400 RWF.",
			expected: domain.CategoryBankDeposits,
		},
		{
			name:     "airtime bill payment",
			body:     "*162*S*Airtime purchase completed at 2024-05-12 11:41:28. Fee was 0 RWF.",
			expected: domain.CategoryAirtimeBillPayments,
		},
		{
			name:     "cash power bill payment",
			body:     "*162*S*Cash Power purchase completed at 2024-05-14 21:22:43 with token 36004-57099.",
			expected: domain.CategoryCashPowerBillPayments,
		},
		{
			name:     "third party initiated",
			body:     "A transaction of 10000 RWF by Robert Brown on your MOMO account was completed at 2024-05-10 18:48:42.",
			expected: domain.CategoryThirdPartyInitiated,
		},
		{
			name:     "third party initiated with multi-word account name",
			body:     "A transaction of 10000 RWF by Robert Brown on your mobile money account was completed at 2024-05-10 18:48:42.",
			expected: domain.CategoryThirdPartyInitiated,
		},
		{
			name:     "agent withdrawal",
			body:     "You Jane Doe have via agent: Agent Sophia (250790777777), withdrawn 20000 RWF at 2024-05-26 02:18:00.",
			expected: domain.CategoryWithdrawalsFromAgents,
		},
		{
			name:     "bank transfer",
			body:     "Your transfer has been completed at 2024-06-01 12:00:00. External Transaction Id: 0a26b9fe-60b7.",
			expected: domain.CategoryBankTransfers,
		},
		{
			name:     "bundle purchase via internet keyword",
			body:     "You have purchased an internet bundle of 1GB valid for 30 days.",
			expected: domain.CategoryBundlePurchases,
		},
		{
			name:     "bundle purchase via bundles and packs, case-insensitive",
			body:     "Purchase of BUNDLES AND PACKS completed.",
			expected: domain.CategoryBundlePurchases,
		},
		{
			name:     "bundle purchase via voice bundle",
			body:     "Your Voice Bundle purchase was successful.",
			expected: domain.CategoryBundlePurchases,
		},
		{
			name:     "no rule matches",
			body:     "Welcome! Your PIN was changed successfully.",
			expected: domain.CategoryOther,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyBody(tc.body))
		})
	}
}

// Rule order is a contract: a body carrying both an incoming-money trigger
// and a bank-transfer trigger (external id) classifies by the earlier rule.
func TestClassifyBody_RuleOrderTieBreak(t *testing.T) {
	body := "You have received 5000 RWF from Marie Claire (250788111222). External Transaction Id: AB-123."
	assert.Equal(t, domain.CategoryIncomingMoney, classifyBody(body))
}
