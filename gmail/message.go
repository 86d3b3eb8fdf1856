package gmail

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Message is the outbound email assembled from the compose form. It is
// transient: constructed per send request and never stored.
type Message struct {
	To      string
	Subject string
	Body    string
}

// EncodeRaw renders the message in RFC 2822 shape and encodes it with
// the unpadded URL-safe base64 alphabet, as the Gmail API expects for
// the "raw" field. CR and LF are stripped from the header fields so a
// form value cannot smuggle extra headers into the envelope.
func (m Message) EncodeRaw() string {
	lines := []string{
		"To: " + headerValue(m.To),
		"Content-Type: text/plain; charset=utf-8",
		"MIME-Version: 1.0",
		"Subject: " + headerValue(m.Subject),
		"",
		m.Body,
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\r\n")))
}

func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// DecodeRaw parses an encoded envelope back into its fields.
func DecodeRaw(raw string) (Message, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Message{}, fmt.Errorf("decode raw message: %w", err)
	}

	headerPart, body, found := strings.Cut(string(data), "\r\n\r\n")
	if !found {
		return Message{}, errors.New("malformed message: missing header separator")
	}

	msg := Message{Body: body}
	for _, line := range strings.Split(headerPart, "\r\n") {
		name, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch name {
		case "To":
			msg.To = value
		case "Subject":
			msg.Subject = value
		}
	}
	return msg, nil
}
