package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"dario.cat/mergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommilligan/on-air/pkg/indicator"
)

func TestNewConfiguration(t *testing.T) {
	instance := NewConfiguration()

	assert.False(t, instance.PreventAutoSave)
	assert.Empty(t, instance.Source)
	assert.Equal(t, 5*time.Second, instance.PollInterval)
	assert.Equal(t, 1*time.Minute, instance.StalenessWindow)

	assert.Equal(t, []string{"/dev/snd/pcmC*"}, instance.Probe.AudioDevices)
	assert.Equal(t, []string{"/dev/video*"}, instance.Probe.VideoDevices)
	assert.Equal(t, "tcp://localhost:1883", instance.Transport.Broker)
	assert.Equal(t, "on-air/state", instance.Transport.Topic)
	assert.Equal(t, byte(1), instance.Transport.Qos)
	assert.Equal(t, indicator.TypeDefault, instance.Indicator.Type)
	assert.Equal(t, 100*time.Millisecond, instance.Display.BlinkInterval)
	assert.Equal(t, 3, instance.Display.BlinkRepeat)
}

func TestConfiguration_saveTo_loadFrom_roundTrip(t *testing.T) {
	instance := NewConfiguration()
	instance.Source = "studio-a"
	instance.StalenessWindow = 30 * time.Second
	instance.Transport.Broker = "tcp://broker.example.net:1883"
	instance.Indicator.Type = indicator.TypeHomeAssistant
	instance.Display.BlinkRepeat = 5

	var buf bytes.Buffer
	require.NoError(t, instance.saveTo(&buf))
	saved := buf.String()

	actual := NewConfiguration()
	require.NoError(t, actual.loadFrom(&buf))

	assert.Equal(t, "studio-a", actual.Source)
	assert.Equal(t, 30*time.Second, actual.StalenessWindow)
	assert.Equal(t, "tcp://broker.example.net:1883", actual.Transport.Broker)
	assert.Equal(t, indicator.TypeHomeAssistant, actual.Indicator.Type)
	assert.Equal(t, 5, actual.Display.BlinkRepeat)

	// Saving what was loaded reproduces the file exactly.
	var again bytes.Buffer
	require.NoError(t, actual.saveTo(&again))
	assert.Equal(t, saved, again.String())
}

func TestConfiguration_loadFrom_rejectsUnknownFields(t *testing.T) {
	instance := NewConfiguration()

	err := instance.loadFrom(strings.NewReader("flavor: strawberry\n"))
	assert.Error(t, err)
}

func TestConfiguration_flagsWinOverLoaded(t *testing.T) {
	loaded := NewConfiguration()
	loaded.Source = "from-file"
	loaded.PollInterval = 15 * time.Second
	loaded.Transport.Broker = "tcp://file.example.net:1883"

	var fromFlags Configuration
	fromFlags.Source = "from-flag"
	fromFlags.Transport.Username = "alice"

	require.NoError(t, mergo.Merge(&loaded, fromFlags, mergo.WithOverride))

	assert.Equal(t, "from-flag", loaded.Source)
	assert.Equal(t, "alice", loaded.Transport.Username)
	// Values only the file sets stay untouched.
	assert.Equal(t, 15*time.Second, loaded.PollInterval)
	assert.Equal(t, "tcp://file.example.net:1883", loaded.Transport.Broker)
}
