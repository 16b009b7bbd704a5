package indicator

import "fmt"

// Color is a plain RGB triple as the indicator devices consume it.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

var (
	// ColorVideo outranks ColorAudio: if anybody's camera is on the room shows
	// video, no matter how many microphones are open.
	ColorVideo = Color{Red: 255}
	ColorAudio = Color{Blue: 255}
	// ColorClear is only ever blinked as an all-clear pulse; it is never held.
	ColorClear = Color{Green: 255}
	ColorOff   = Color{}
)

func (this Color) IsOff() bool {
	return this == ColorOff
}

func (this Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", this.Red, this.Green, this.Blue)
}
