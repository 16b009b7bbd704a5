package hue

import "github.com/tommilligan/on-air/pkg/common"

func NewConfiguration() Configuration {
	return Configuration{
		Pair:   false,
		Bridge: "",
		User:   "",

		Name:  common.MustNewRegexp("^OnAir"),
		Kinds: Kinds{},

		Brightness: 254,
	}
}

type Configuration struct {
	Pair   bool   `yaml:"pair,omitempty"`
	Bridge string `yaml:"bridge,omitempty"`
	User   string `yaml:"user,omitempty"`

	Name  common.Regexp `yaml:"name"`
	Kinds Kinds         `yaml:"kinds,omitempty"`

	Brightness uint8 `yaml:"brightness"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("indicator.hue.pair", "If true this application will pair again with an existing hue. This will be implicit enabled if this application is not already paired.").
		Envar("ONAIR_INDICATOR_HUE_PAIR").
		BoolVar(&this.Pair)
	using.Flag("indicator.hue.bridge", "Usually the bridge is automatically detected. You can specify an explicit one if they are more than one. This is only required while pairing and will afterwards be ignored.").
		Envar("ONAIR_INDICATOR_HUE_BRIDGE").
		StringVar(&this.Bridge)
	using.Flag("indicator.hue.user", "Usually this is set while pairing and will then be persisted. If this set this will be used and not be persisted.").
		Envar("ONAIR_INDICATOR_HUE_USER").
		StringVar(&this.User)
	using.Flag("indicator.hue.name", "Name as regex of the lights/groups which should be handled by this app.").
		Envar("ONAIR_INDICATOR_HUE_NAME").
		SetValue(&this.Name)
	using.Flag("indicator.hue.kind", "Kind(s) of what should be handled. Possible values: "+AllKinds.String()).
		Envar("ONAIR_INDICATOR_HUE_KIND").
		SetValue(&this.Kinds)
	using.Flag("indicator.hue.brightness", "The peak brightness the light is driven at. Scale from 1 (the minimum the light is capable of) to 254 (the maximum).").
		Envar("ONAIR_INDICATOR_HUE_BRIGHTNESS").
		Uint8Var(&this.Brightness)
}
