package display

import (
	"sync"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/indicator"
	"github.com/tommilligan/on-air/pkg/onair"
)

func New(device indicator.Indicator, conf *Configuration) *Display {
	return &Display{
		device: device,
		conf:   conf,
		sleep:  time.Sleep,
	}
}

// Display turns combined on-air state changes into indicator commands.
//
// Every transition to a new solid color first alerts the room with a short
// blink sequence which alternates between the new color and the previously
// held one, then settles on the new color. Blinking against the previous color
// instead of black makes a video→audio transition flash red/blue, so the room
// sees both that something changed and what it changed from.
//
// The all-clear transition is special: the clear color is only pulsed, then
// the indicator goes dark. "Nobody is on-air" is not a state worth lighting a
// lamp for.
type Display struct {
	device indicator.Indicator
	conf   *Configuration

	// sleep is the blink-hold delay; replaced in tests.
	sleep func(time.Duration)

	mutex sync.Mutex
	held  indicator.Color
}

// Apply drives the indicator to the given combined state. Applying a state
// whose solid color is already held does nothing at all, so redundant
// invocations never make the light flicker. The blink sequence is synchronous
// and runs to completion; a newer update is simply processed afterwards.
func (this *Display) Apply(state onair.Combined) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	blink, hold := colorsFor(state)
	if hold == this.held {
		log.With("state", state).
			Debug("Indicator already holds the matching color.")
		return nil
	}

	previous := this.held
	for i := 0; i < this.conf.BlinkRepeat; i++ {
		if err := this.set(blink); err != nil {
			return err
		}
		this.sleep(this.conf.BlinkInterval)
		if err := this.set(previous); err != nil {
			return err
		}
		this.sleep(this.conf.BlinkInterval)
	}

	if err := this.set(hold); err != nil {
		return err
	}
	this.held = hold

	log.With("state", state).
		With("color", hold).
		Debug("Indicator settled.")
	return nil
}

// Held returns the solid color the indicator currently holds.
func (this *Display) Held() indicator.Color {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return this.held
}

// Close switches the indicator off. It is safe to call more than once and
// with no device attached.
func (this *Display) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.held = indicator.ColorOff
	return this.set(indicator.ColorOff)
}

func (this *Display) set(c indicator.Color) error {
	if this.device == nil {
		return nil
	}
	if c.IsOff() {
		return this.device.Off()
	}
	return this.device.SetColor(c)
}

// colorsFor resolves the blink and the settle color of a combined state.
// Video outranks audio; the all-clear pulses the clear color but settles dark.
func colorsFor(state onair.Combined) (blink, hold indicator.Color) {
	switch {
	case state.Video:
		return indicator.ColorVideo, indicator.ColorVideo
	case state.Audio:
		return indicator.ColorAudio, indicator.ColorAudio
	default:
		return indicator.ColorClear, indicator.ColorOff
	}
}
