package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommilligan/on-air/pkg/display"
	"github.com/tommilligan/on-air/pkg/indicator"
	"github.com/tommilligan/on-air/pkg/onair"
)

type deviceMock struct {
	commands []string
}

func (this *deviceMock) SetColor(c indicator.Color) error {
	this.commands = append(this.commands, c.String())
	return nil
}

func (this *deviceMock) Off() error {
	this.commands = append(this.commands, "off")
	return nil
}

func (this *deviceMock) GetType() indicator.Type {
	return indicator.TypeNone
}

func (this *deviceMock) take() []string {
	result := this.commands
	this.commands = nil
	return result
}

func newListenFixture() (*App, *onair.Aggregator, *display.Display, *deviceMock) {
	a := NewApp()
	device := &deviceMock{}
	d := display.New(device, &display.Configuration{
		BlinkInterval: 0,
		BlinkRepeat:   1,
	})
	return a, onair.NewAggregator(), d, device
}

func message(t *testing.T, source string, audio, video bool) []byte {
	t.Helper()
	data, err := onair.Payload{Source: source, Audio: audio, Video: video, SentAt: time.Now()}.Encode()
	require.NoError(t, err)
	return data
}

func TestApp_handleMessage_drivesTheIndicator(t *testing.T) {
	a, aggregator, d, device := newListenFixture()

	a.handleMessage(aggregator, d, message(t, "alice", true, false))
	assert.Equal(t, indicator.ColorAudio, d.Held())
	assert.NotEmpty(t, device.take())

	a.handleMessage(aggregator, d, message(t, "bob", false, true))
	assert.Equal(t, indicator.ColorVideo, d.Held())

	a.handleMessage(aggregator, d, message(t, "bob", false, false))
	assert.Equal(t, indicator.ColorAudio, d.Held())

	a.handleMessage(aggregator, d, message(t, "alice", false, false))
	assert.Equal(t, indicator.ColorOff, d.Held())
}

func TestApp_handleMessage_redeliveryDoesNotBlinkAgain(t *testing.T) {
	a, aggregator, d, device := newListenFixture()

	data := message(t, "alice", true, false)
	a.handleMessage(aggregator, d, data)
	require.NotEmpty(t, device.take())

	a.handleMessage(aggregator, d, data)
	a.handleMessage(aggregator, d, data)
	assert.Empty(t, device.take())
	assert.Equal(t, indicator.ColorAudio, d.Held())
}

func TestApp_handleMessage_dropsMalformedMessages(t *testing.T) {
	a, aggregator, d, device := newListenFixture()

	a.handleMessage(aggregator, d, []byte(`on air!`))
	a.handleMessage(aggregator, d, []byte(`{"source":"alice"}`))

	assert.Empty(t, device.take())
	assert.Equal(t, 0, aggregator.Len())
}

func TestApp_handleMessage_dropsStaleMessages(t *testing.T) {
	a, aggregator, d, device := newListenFixture()

	stale, err := onair.Payload{
		Source: "alice",
		Audio:  true,
		SentAt: time.Now().Add(-2 * time.Minute),
	}.Encode()
	require.NoError(t, err)

	a.handleMessage(aggregator, d, stale)
	assert.Empty(t, device.take())
	assert.Equal(t, 0, aggregator.Len())
	assert.Equal(t, indicator.ColorOff, d.Held())
}

func TestApp_handleMessage_withoutSentAtIsFresh(t *testing.T) {
	a, aggregator, d, _ := newListenFixture()

	a.handleMessage(aggregator, d, []byte(`{"source":"alice","audio":true,"video":false}`))
	assert.Equal(t, indicator.ColorAudio, d.Held())
}

func TestApp_handleMessage_disabledStalenessWindowAcceptsEverything(t *testing.T) {
	a, aggregator, d, _ := newListenFixture()
	a.config.StalenessWindow = 0

	stale, err := onair.Payload{
		Source: "alice",
		Video:  true,
		SentAt: time.Now().Add(-24 * time.Hour),
	}.Encode()
	require.NoError(t, err)

	a.handleMessage(aggregator, d, stale)
	assert.Equal(t, indicator.ColorVideo, d.Held())
}
