package facade

import (
	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/indicator"
	"github.com/tommilligan/on-air/pkg/indicator/homeassistant"
	"github.com/tommilligan/on-air/pkg/indicator/hue"
)

func NewConfiguration() Configuration {
	return Configuration{
		Type:          indicator.TypeDefault,
		Hue:           hue.NewConfiguration(),
		HomeAssistant: homeassistant.NewConfiguration(),
	}
}

type Configuration struct {
	Type          indicator.Type              `yaml:"type"`
	Hue           hue.Configuration           `yaml:"hue,omitempty"`
	HomeAssistant homeassistant.Configuration `yaml:"homeAssistant,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("indicator", "Device which displays the on-air state. All possible values: "+indicator.AllTypes.String()).
		Envar("ONAIR_INDICATOR").
		SetValue(&this.Type)

	this.Hue.SetupConfiguration(using)
	this.HomeAssistant.SetupConfiguration(using)
}
