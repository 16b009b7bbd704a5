package onair

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	sentAt := time.Date(2024, 5, 3, 10, 30, 0, 0, time.UTC)

	actual, err := DecodePayload([]byte(`{"source":"alice","audio":true,"video":false,"sentAt":"2024-05-03T10:30:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, Payload{Source: "alice", Audio: true, Video: false, SentAt: sentAt}, actual)
}

func TestDecodePayload_withoutSentAt(t *testing.T) {
	actual, err := DecodePayload([]byte(`{"source":"alice","audio":false,"video":true}`))
	require.NoError(t, err)
	assert.Equal(t, Payload{Source: "alice", Video: true}, actual)
	assert.True(t, actual.SentAt.IsZero())
}

func TestDecodePayload_ignoresUnknownFields(t *testing.T) {
	actual, err := DecodePayload([]byte(`{"source":"alice","audio":true,"video":false,"flavor":"strawberry"}`))
	require.NoError(t, err)
	assert.Equal(t, Payload{Source: "alice", Audio: true}, actual)
}

func TestDecodePayload_fails(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"notJson", `on air!`},
		{"jsonButNoObject", `["alice", true, false]`},
		{"missingSource", `{"audio":true,"video":false}`},
		{"missingAudio", `{"source":"alice","video":false}`},
		{"missingVideo", `{"source":"alice","audio":true}`},
		{"emptySource", `{"source":"","audio":true,"video":false}`},
		{"wrongTypedAudio", `{"source":"alice","audio":"yes","video":false}`},
		{"wrongTypedSource", `{"source":42,"audio":true,"video":false}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, actual := DecodePayload([]byte(c.data))
			assert.ErrorIs(t, actual, ErrInvalidPayload)
		})
	}
}

func TestPayload_Encode_roundTrip(t *testing.T) {
	instance := Payload{Source: "bob", Audio: true, Video: true, SentAt: time.Now().UTC().Truncate(time.Second)}

	data, err := instance.Encode()
	require.NoError(t, err)

	actual, err := DecodePayload(data)
	require.NoError(t, err)
	assert.Equal(t, instance, actual)
}

func TestPayload_Encode_failsOnEmptySource(t *testing.T) {
	instance := Payload{Audio: true}

	_, actual := instance.Encode()
	assert.ErrorIs(t, actual, ErrInvalidPayload)
}

func TestPayload_EqualState(t *testing.T) {
	instance := Payload{Source: "alice", Audio: true, SentAt: time.Now()}

	assert.True(t, instance.EqualState(Payload{Source: "alice", Audio: true}))
	assert.True(t, instance.EqualState(Payload{Source: "alice", Audio: true, SentAt: time.Now().Add(time.Hour)}))
	assert.False(t, instance.EqualState(Payload{Source: "bob", Audio: true}))
	assert.False(t, instance.EqualState(Payload{Source: "alice"}))
	assert.False(t, instance.EqualState(Payload{Source: "alice", Audio: true, Video: true}))
}

func TestPayload_String(t *testing.T) {
	assert.Equal(t, "alice[audio=true,video=false]", Payload{Source: "alice", Audio: true}.String())
}
