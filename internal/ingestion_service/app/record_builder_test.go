package app

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecordBuilder(now time.Time) *RecordBuilder {
	builder := NewRecordBuilder("RWF")
	builder.now = func() time.Time { return now }
	return builder
}

func TestRecordBuilder_Build_FullMessage(t *testing.T) {
	ingestedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	builder := newTestRecordBuilder(ingestedAt)

	raw := domain.RawMessage{
		Address:      "M-Money",
		Body:         "*143*R*You have received 2000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51. Your new balance:2000 RWF. Financial Transaction Id: 76662021700.",
		ReadableDate: "10 May 2024 16:30:58",
		Attributes:   map[string]string{"protocol": "0"},
	}

	record := builder.Build(raw)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, domain.CategoryIncomingMoney, record.Category)
	assert.Equal(t, int64(2000), record.Amount)
	assert.Equal(t, "RWF", record.Currency)
	assert.Equal(t, time.Date(2024, 5, 10, 16, 30, 51, 0, time.UTC), record.OccurredAt)
	require.NotNil(t, record.Sender)
	assert.Equal(t, "Jane Smith", *record.Sender)
	assert.Nil(t, record.Receiver)
	require.NotNil(t, record.Balance)
	assert.Equal(t, int64(2000), *record.Balance)
	assert.Equal(t, int64(0), record.Fee)
	require.NotNil(t, record.TransactionID)
	assert.Equal(t, "76662021700", *record.TransactionID)
	assert.Nil(t, record.ExternalTransactionID)
	assert.Equal(t, raw.Body, record.RawBody)
	assert.Equal(t, raw.Attributes, record.SourceAttributes)
	assert.Equal(t, ingestedAt, record.CreatedAt)
}

func TestRecordBuilder_Build_MissingBody(t *testing.T) {
	ingestedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	builder := newTestRecordBuilder(ingestedAt)

	record := builder.Build(domain.RawMessage{Address: "M-Money"})

	assert.Equal(t, domain.CategoryUnknown, record.Category)
	assert.Equal(t, "No message body", record.RawBody)
	assert.Equal(t, int64(0), record.Amount)
	assert.Equal(t, int64(0), record.Fee)
	assert.Nil(t, record.Balance)
	assert.Nil(t, record.Sender)
	assert.Nil(t, record.Receiver)
	assert.Nil(t, record.TransactionID)
	assert.Nil(t, record.ExternalTransactionID)
	assert.Equal(t, ingestedAt, record.OccurredAt)
}

func TestRecordBuilder_Build_OccurredAtPriority(t *testing.T) {
	ingestedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	builder := newTestRecordBuilder(ingestedAt)

	testCases := []struct {
		name     string
		raw      domain.RawMessage
		expected time.Time
	}{
		{
			name: "body date token wins over readable date",
			raw: domain.RawMessage{
				Body:         "Completed at 2024-05-10 16:30:51.",
				ReadableDate: "11 May 2024 08:00:00",
			},
			expected: time.Date(2024, 5, 10, 16, 30, 51, 0, time.UTC),
		},
		{
			name: "readable date when body carries no token",
			raw: domain.RawMessage{
				Body:         "Your PIN was changed successfully.",
				ReadableDate: "11 May 2024 08:00:00",
			},
			expected: time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "ingestion time as last resort",
			raw:      domain.RawMessage{Body: "Your PIN was changed successfully."},
			expected: ingestedAt,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, builder.Build(tc.raw).OccurredAt)
		})
	}
}

// A builder configured for another currency extracts against that currency's
// marker, so the stamped currency and the extracted amount stay in agreement.
func TestRecordBuilder_Build_NonDefaultCurrency(t *testing.T) {
	builder := NewRecordBuilder("TZS")
	builder.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	record := builder.Build(domain.RawMessage{
		Body: "You have received 2000 TZS from Jane Smith (*********013). Your new balance:3000 TZS.",
	})

	assert.Equal(t, "TZS", record.Currency)
	assert.Equal(t, int64(2000), record.Amount)
	require.NotNil(t, record.Balance)
	assert.Equal(t, int64(3000), *record.Balance)
}

// The builder degrades, it never fabricates: a body matching nothing yields a
// record with zeroed amounts and nil optionals.
func TestRecordBuilder_Build_NoFabrication(t *testing.T) {
	builder := newTestRecordBuilder(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	record := builder.Build(domain.RawMessage{Body: "Welcome to the service."})

	assert.Equal(t, domain.CategoryOther, record.Category)
	assert.Equal(t, int64(0), record.Amount)
	assert.Nil(t, record.Balance)
	assert.Nil(t, record.TransactionID)
	assert.Nil(t, record.Sender)
	assert.Nil(t, record.Receiver)
}
