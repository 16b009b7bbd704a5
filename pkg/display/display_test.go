package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newTestDisplay() (*Display, *deviceMock, *[]time.Duration) {
	device := &deviceMock{}
	conf := Configuration{
		BlinkInterval: 25 * time.Millisecond,
		BlinkRepeat:   2,
	}
	instance := New(device, &conf)

	var slept []time.Duration
	instance.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	return instance, device, &slept
}

func TestDisplay_Apply_blinksAgainstDarkThenSettles(t *testing.T) {
	instance, device, slept := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))

	assert.Equal(t, []string{
		"#0000ff", "off",
		"#0000ff", "off",
		"#0000ff",
	}, device.take())
	assert.Equal(t, indicator.ColorAudio, instance.Held())
	assert.Len(t, *slept, 4)
	for _, d := range *slept {
		assert.Equal(t, 25*time.Millisecond, d)
	}
}

func TestDisplay_Apply_blinksAgainstPreviousColor(t *testing.T) {
	instance, device, _ := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Video: true}))
	device.take()

	// video -> audio alternates the new blue against the old red, so the
	// transition itself is visible.
	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))
	assert.Equal(t, []string{
		"#0000ff", "#ff0000",
		"#0000ff", "#ff0000",
		"#0000ff",
	}, device.take())
	assert.Equal(t, indicator.ColorAudio, instance.Held())
}

func TestDisplay_Apply_isIdempotentOnHeldColor(t *testing.T) {
	instance, device, slept := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))
	device.take()
	sleeps := len(*slept)

	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))
	assert.Empty(t, device.take())
	assert.Len(t, *slept, sleeps)
}

func TestDisplay_Apply_sameColorForDifferentStateIsNoop(t *testing.T) {
	instance, device, _ := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Video: true}))
	device.take()

	// Audio joining an ongoing video capture keeps the video color.
	require.NoError(t, instance.Apply(onair.Combined{Audio: true, Video: true}))
	assert.Empty(t, device.take())
	assert.Equal(t, indicator.ColorVideo, instance.Held())
}

func TestDisplay_Apply_videoOutranksAudio(t *testing.T) {
	instance, device, _ := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Audio: true, Video: true}))

	commands := device.take()
	require.NotEmpty(t, commands)
	assert.Equal(t, "#ff0000", commands[len(commands)-1])
	assert.Equal(t, indicator.ColorVideo, instance.Held())
}

func TestDisplay_Apply_allClearPulsesThenGoesDark(t *testing.T) {
	instance, device, _ := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Video: true}))
	device.take()

	require.NoError(t, instance.Apply(onair.Combined{}))
	assert.Equal(t, []string{
		"#00ff00", "#ff0000",
		"#00ff00", "#ff0000",
		"off",
	}, device.take())
	assert.Equal(t, indicator.ColorOff, instance.Held())

	// A repeated all-clear does not pulse again.
	require.NoError(t, instance.Apply(onair.Combined{}))
	assert.Empty(t, device.take())
}

func TestDisplay_Apply_withoutDevice(t *testing.T) {
	instance := New(nil, &Configuration{BlinkRepeat: 1})
	instance.sleep = func(time.Duration) {}

	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))
	assert.Equal(t, indicator.ColorAudio, instance.Held())
}

func TestDisplay_Close(t *testing.T) {
	instance, device, _ := newTestDisplay()

	require.NoError(t, instance.Apply(onair.Combined{Audio: true}))
	device.take()

	require.NoError(t, instance.Close())
	assert.Equal(t, []string{"off"}, device.take())
	assert.Equal(t, indicator.ColorOff, instance.Held())

	require.NoError(t, instance.Close())
	assert.Equal(t, []string{"off"}, device.take())
}
