// Package smsbackup reads SMS backup XML archives into raw messages.
//
// The archive format is a single <smses> element whose <sms> children carry
// everything as attributes:
//
//	<smses count="2">
//	  <sms address="M-Money" body="..." type="1" readable_date="10 May 2024 16:30:51" contact_name="(Unknown)"/>
//	  ...
//	</smses>
package smsbackup

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

type smsElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type smsesDocument struct {
	XMLName  xml.Name     `xml:"smses"`
	Messages []smsElement `xml:"sms"`
}

// Reader loads a backup archive from disk.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read parses the archive at path into raw messages, preserving archive
// order. Known attributes are mapped onto RawMessage fields; every attribute,
// known or not, is also kept verbatim in RawMessage.Attributes. An I/O or XML
// syntax error is structural and returned to the caller; a message missing
// its body attribute is not an error and flows through with an empty body.
func (r *Reader) Read(path string) ([]domain.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive file: %w", err)
	}

	var doc smsesDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing archive XML: %w", err)
	}

	messages := make([]domain.RawMessage, 0, len(doc.Messages))
	for _, element := range doc.Messages {
		msg := domain.RawMessage{
			Attributes: make(map[string]string, len(element.Attrs)),
		}
		for _, attr := range element.Attrs {
			msg.Attributes[attr.Name.Local] = attr.Value
			switch attr.Name.Local {
			case "address":
				msg.Address = attr.Value
			case "body":
				msg.Body = attr.Value
			case "type":
				msg.Type = attr.Value
			case "readable_date":
				msg.ReadableDate = attr.Value
			case "contact_name":
				msg.ContactName = attr.Value
			}
		}
		messages = append(messages, msg)
	}

	r.logger.Info("Archive loaded", "path", path, "message_count", len(messages))
	return messages, nil
}
