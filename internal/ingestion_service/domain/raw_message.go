package domain

// RawMessage is one mobile-money notification as it appears in the SMS backup
// archive. It is immutable once read: the pipeline only ever derives from it.
type RawMessage struct {
	Address      string `json:"address"`
	Body         string `json:"body"`
	Type         string `json:"type"`
	ReadableDate string `json:"readable_date,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`

	// Attributes preserves every transport-level attribute of the archive
	// element verbatim, including the ones mapped to the fields above.
	Attributes map[string]string `json:"attributes,omitempty"`
}
