package onair

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload indicates a message which violates the wire schema. Such
// messages are rejected at the ingestion boundary; they never reach the
// aggregation state.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is one source's reported hardware state as it travels over the
// transport.
type Payload struct {
	// Source identifies the reporting machine. It is never empty.
	Source string `json:"source"`
	// Audio is true while at least one process on the source holds an audio
	// capture device open.
	Audio bool `json:"audio"`
	// Video is the same for video capture devices.
	Video bool `json:"video"`
	// SentAt is the moment the source published this payload. A zero value
	// means the publisher did not provide one; such payloads are treated as
	// fresh.
	SentAt time.Time `json:"sentAt,omitempty"`
}

// DecodePayload parses and validates a transported message. Unknown fields are
// ignored; missing or wrong-typed schema fields are reported as
// ErrInvalidPayload.
func DecodePayload(data []byte) (Payload, error) {
	var raw struct {
		Source *string    `json:"source"`
		Audio  *bool      `json:"audio"`
		Video  *bool      `json:"video"`
		SentAt *time.Time `json:"sentAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw.Source == nil {
		return Payload{}, fmt.Errorf("%w: missing field source", ErrInvalidPayload)
	}
	if raw.Audio == nil {
		return Payload{}, fmt.Errorf("%w: missing field audio", ErrInvalidPayload)
	}
	if raw.Video == nil {
		return Payload{}, fmt.Errorf("%w: missing field video", ErrInvalidPayload)
	}

	result := Payload{
		Source: *raw.Source,
		Audio:  *raw.Audio,
		Video:  *raw.Video,
	}
	if raw.SentAt != nil {
		result.SentAt = *raw.SentAt
	}
	if err := result.Validate(); err != nil {
		return Payload{}, err
	}
	return result, nil
}

func (this Payload) Validate() error {
	if this.Source == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidPayload)
	}
	return nil
}

func (this Payload) Encode() ([]byte, error) {
	if err := this.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(this)
}

// EqualState reports whether the other payload describes the same state of the
// same source. The transport timestamp does not take part; a re-delivered
// payload equals its original.
func (this Payload) EqualState(o Payload) bool {
	return this.Source == o.Source &&
		this.Audio == o.Audio &&
		this.Video == o.Video
}

func (this Payload) String() string {
	return fmt.Sprintf("%s[audio=%t,video=%t]", this.Source, this.Audio, this.Video)
}
