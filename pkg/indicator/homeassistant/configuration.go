package homeassistant

import (
	"github.com/tommilligan/on-air/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		Server:   "",
		Token:    "",
		EntityId: "light.on_air",
	}
}

type Configuration struct {
	Server   string `yaml:"server,omitempty"`
	Token    string `yaml:"token,omitempty"`
	EntityId string `yaml:"entityId"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("indicator.homeassistant.server", "URL of the Home Assistant instance.").
		Envar("ONAIR_INDICATOR_HOMEASSISTANT_SERVER").
		StringVar(&this.Server)
	using.Flag("indicator.homeassistant.token", "Long life token to access the Home Assistant instance.").
		Envar("ONAIR_INDICATOR_HOMEASSISTANT_TOKEN").
		StringVar(&this.Token)
	using.Flag("indicator.homeassistant.entityId", "Light entity which acts as the indicator.").
		Envar("ONAIR_INDICATOR_HOMEASSISTANT_ENTITY_ID").
		StringVar(&this.EntityId)
}
