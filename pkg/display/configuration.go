package display

import (
	"time"

	"github.com/tommilligan/on-air/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		BlinkInterval: 100 * time.Millisecond,
		BlinkRepeat:   3,
	}
}

type Configuration struct {
	// BlinkInterval is how long each half of a blink is held.
	BlinkInterval time.Duration `yaml:"blinkInterval,omitempty"`
	// BlinkRepeat is the number of alert blinks before the color settles.
	BlinkRepeat int `yaml:"blinkRepeat,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("display.blinkInterval", "How long each half of an alert blink is held.").
		Envar("ONAIR_DISPLAY_BLINK_INTERVAL").
		DurationVar(&this.BlinkInterval)
	using.Flag("display.blinkRepeat", "Number of alert blinks before the indicator settles on the new color.").
		Envar("ONAIR_DISPLAY_BLINK_REPEAT").
		IntVar(&this.BlinkRepeat)
}
