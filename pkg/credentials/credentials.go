package credentials

import (
	"encoding/json"
)

const appName = "github.com/tommilligan/on-air"

// Credentials holds everything secret this application has to remember:
// the broker login of the transport and the access data of the indicator
// backends.
//
// On platforms with a system credential store the whole struct is persisted
// there as one JSON blob (see ReadFromStore/WriteToStore); everywhere else the
// owning components fall back to the regular configuration file.
type Credentials struct {
	BrokerUsername string `json:"broker_username,omitempty"`
	BrokerPassword string `json:"broker_password,omitempty"`

	HueBridge string `json:"hue_bridge,omitempty"`
	HueUser   string `json:"hue_user,omitempty"`

	HomeAssistantServer string `json:"homeAssistant_server,omitempty"`
	HomeAssistantToken  string `json:"homeAssistant_token,omitempty"`
}

func (this *Credentials) IsZero() bool {
	return this.IsBrokerZero() && this.IsHueZero() && this.IsHomeAssistantZero()
}

func (this *Credentials) IsBrokerZero() bool {
	return this.BrokerUsername == "" && this.BrokerPassword == ""
}

func (this *Credentials) IsHueZero() bool {
	return this.HueBridge == "" && this.HueUser == ""
}

func (this *Credentials) IsHomeAssistantZero() bool {
	return this.HomeAssistantServer == "" && this.HomeAssistantToken == ""
}

func (this *Credentials) MarshalBinary() (data []byte, err error) {
	return json.Marshal(this)
}

func (this *Credentials) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, this)
}
