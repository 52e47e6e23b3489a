package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// missingBodyPlaceholder is substituted for an absent message body so that
// every extractor downstream always receives a non-empty input.
const missingBodyPlaceholder = "No message body"

// RecordBuilder assembles one TransactionRecord from a raw message. Build is
// a pure transform and never fails: every extraction miss degrades to the
// documented default for that field.
type RecordBuilder struct {
	currency string
	patterns currencyPatterns
	now      func() time.Time
}

// NewRecordBuilder creates a RecordBuilder stamping records with the given
// deployment currency code. The same code is the marker the money extractors
// look for, so stamped currency and extracted amounts cannot disagree.
func NewRecordBuilder(currency string) *RecordBuilder {
	return &RecordBuilder{
		currency: currency,
		patterns: newCurrencyPatterns(currency),
		now:      time.Now,
	}
}

// Build converts raw into a structured transaction record. A message without
// a body is categorized Unknown and keeps every optional field empty; the
// builder never fabricates values the text does not carry.
func (b *RecordBuilder) Build(raw domain.RawMessage) *domain.TransactionRecord {
	body := raw.Body
	var category domain.Category
	if body == "" {
		body = missingBodyPlaceholder
		category = domain.CategoryUnknown
	} else {
		category = classifyBody(body)
	}

	record := &domain.TransactionRecord{
		ID:               uuid.New(),
		Category:         category,
		Currency:         b.currency,
		OccurredAt:       b.resolveOccurredAt(body, raw.ReadableDate),
		RawBody:          body,
		SourceAttributes: raw.Attributes,
		CreatedAt:        b.now().UTC(),
	}

	if amount := b.patterns.extractAmount(body); amount != nil {
		record.Amount = *amount
	}
	if fee := b.patterns.extractFee(body); fee != nil {
		record.Fee = *fee
	}
	record.Balance = b.patterns.extractBalance(body)
	record.TransactionID = extractTransactionID(body)
	record.ExternalTransactionID = extractExternalTransactionID(body)
	record.Sender, record.Receiver = resolveCounterparty(body, category)

	return record
}

// resolveOccurredAt picks the record timestamp by priority: an embedded date
// token in the body, then the archive's readable_date, then ingestion time.
func (b *RecordBuilder) resolveOccurredAt(body, readableDate string) time.Time {
	if embedded := extractDate(body); embedded != nil {
		return *embedded
	}
	if readable := parseReadableDate(readableDate); readable != nil {
		return *readable
	}
	return b.now().UTC()
}
