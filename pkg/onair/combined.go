package onair

// Combined is the logical OR over the states of all known sources: it is true
// in a flag if anybody in the room currently uses the corresponding hardware.
type Combined struct {
	Audio bool `json:"audio"`
	Video bool `json:"video"`
}

// OnAir reports whether anybody currently captures either audio or video.
func (this Combined) OnAir() bool {
	return this.Audio || this.Video
}

func (this Combined) String() string {
	switch {
	case this.Audio && this.Video:
		return "audio+video"
	case this.Video:
		return "video"
	case this.Audio:
		return "audio"
	default:
		return "clear"
	}
}
