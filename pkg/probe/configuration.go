package probe

import "github.com/tommilligan/on-air/pkg/common"

func NewConfiguration() Configuration {
	return Configuration{
		AudioDevices: []string{"/dev/snd/pcmC*"},
		VideoDevices: []string{"/dev/video*"},
	}
}

type Configuration struct {
	// AudioDevices are glob patterns of the capture device files whose usage
	// counts as "microphone is on".
	AudioDevices []string `yaml:"audioDevices,omitempty"`
	// VideoDevices is the same for "camera is on".
	VideoDevices []string `yaml:"videoDevices,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("probe.audioDevice", "Glob pattern of audio capture device files. Can be repeated.").
		Envar("ONAIR_PROBE_AUDIO_DEVICE").
		StringsVar(&this.AudioDevices)
	using.Flag("probe.videoDevice", "Glob pattern of video capture device files. Can be repeated.").
		Envar("ONAIR_PROBE_VIDEO_DEVICE").
		StringsVar(&this.VideoDevices)
}
