package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed transaction-type classification. The spellings are
// part of the persisted data contract and must not change.
type Category string

const (
	CategoryIncomingMoney            Category = "Incoming Money"
	CategoryBankTransfers            Category = "Bank Transfers"
	CategoryPaymentsToCodeHolders    Category = "Payments to Code Holders"
	CategoryTransfersToMobileNumbers Category = "Transfers to Mobile Numbers"
	CategoryBankDeposits             Category = "Bank Deposits"
	CategoryAirtimeBillPayments      Category = "Airtime Bill Payments"
	CategoryCashPowerBillPayments    Category = "Cash Power Bill Payments"
	CategoryWithdrawalsFromAgents    Category = "Withdrawals from Agents"
	CategoryBundlePurchases          Category = "Internet and Voice Bundle Purchases"
	CategoryThirdPartyInitiated      Category = "Transactions Initiated by Third Parties"
	CategoryOther                    Category = "Other"
	CategoryUnknown                  Category = "Unknown"
)

// AllCategories lists every member of the closed set.
var AllCategories = []Category{
	CategoryIncomingMoney,
	CategoryBankTransfers,
	CategoryPaymentsToCodeHolders,
	CategoryTransfersToMobileNumbers,
	CategoryBankDeposits,
	CategoryAirtimeBillPayments,
	CategoryCashPowerBillPayments,
	CategoryWithdrawalsFromAgents,
	CategoryBundlePurchases,
	CategoryThirdPartyInitiated,
	CategoryOther,
	CategoryUnknown,
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// TransactionRecord is the structured, typed output of the ingestion pipeline
// for one raw message. Category is always set; numeric fields are never
// negative; optional fields are nil when the source text carried no value.
type TransactionRecord struct {
	ID                    uuid.UUID         `json:"id"`
	Category              Category          `json:"category"`
	Amount                int64             `json:"amount"`
	Currency              string            `json:"currency"`
	OccurredAt            time.Time         `json:"occurred_at"`
	Sender                *string           `json:"sender,omitempty"`
	Receiver              *string           `json:"receiver,omitempty"`
	Balance               *int64            `json:"balance,omitempty"`
	Fee                   int64             `json:"fee"`
	TransactionID         *string           `json:"transaction_id,omitempty"`
	ExternalTransactionID *string           `json:"external_transaction_id,omitempty"`
	RawBody               string            `json:"raw_body"`
	SourceAttributes      map[string]string `json:"source_attributes,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}
