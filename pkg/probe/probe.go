package probe

import (
	"fmt"

	"github.com/shirou/gopsutil/process"
)

// State is the probe's verdict about the local machine: whether any process
// currently holds an audio or a video capture device open.
type State struct {
	Audio bool
	Video bool
}

// Probe inspects which processes hold the local capture device files open.
// This is the same judgement `lsof /dev/snd/pcmC* /dev/video*` would make,
// expressed as a process table walk.
//
// Reading other processes' file tables usually needs elevated privileges;
// processes this process may not inspect simply do not count as owners.
type Probe struct {
	conf *Configuration
}

func (this *Probe) Initialize(conf *Configuration) error {
	if len(conf.AudioDevices) == 0 && len(conf.VideoDevices) == 0 {
		return fmt.Errorf("no capture device patterns configured")
	}
	this.conf = conf
	return nil
}

func (this *Probe) Dispose() error {
	this.conf = nil
	return nil
}

// Sample takes one snapshot of the current hardware usage. A machine without
// matching device files reports everything as unused.
func (this *Probe) Sample() (State, error) {
	audioDevices, err := expandGlobs(this.conf.AudioDevices)
	if err != nil {
		return State{}, err
	}
	videoDevices, err := expandGlobs(this.conf.VideoDevices)
	if err != nil {
		return State{}, err
	}

	var result State
	if len(audioDevices) == 0 && len(videoDevices) == 0 {
		return result, nil
	}

	candidates, err := process.Processes()
	if err != nil {
		return State{}, fmt.Errorf("cannot inspect process table: %w", err)
	}

	for _, candidate := range candidates {
		files, err := candidate.OpenFiles()
		if err != nil {
			// Gone already, or not ours to read.
			continue
		}
		if !result.Audio && anyOpenOf(audioDevices, files) {
			result.Audio = true
		}
		if !result.Video && anyOpenOf(videoDevices, files) {
			result.Video = true
		}
		if result.Audio && result.Video {
			break
		}
	}

	return result, nil
}
