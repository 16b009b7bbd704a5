package mqtt

import "github.com/tommilligan/on-air/pkg/common"

func NewConfiguration() Configuration {
	return Configuration{
		Broker:            "tcp://localhost:1883",
		ClientId:          "",
		Username:          "",
		Password:          "",
		Topic:             "on-air/state",
		AvailabilityTopic: "",
		Qos:               1,
		CleanSession:      true,
	}
}

type Configuration struct {
	Broker   string `yaml:"broker"`
	ClientId string `yaml:"clientId,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	Topic string `yaml:"topic"`
	// AvailabilityTopic, if set, carries a retained online/offline marker and
	// a matching last-will so the room can tell a silent instance from a dead
	// one.
	AvailabilityTopic string `yaml:"availabilityTopic,omitempty"`

	Qos          byte `yaml:"qos"`
	CleanSession bool `yaml:"cleanSession"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("transport.mqtt.broker", "URI of the broker all instances share.").
		Envar("ONAIR_TRANSPORT_MQTT_BROKER").
		StringVar(&this.Broker)
	using.Flag("transport.mqtt.clientId", "Client id to connect with. Defaults to one derived from the hostname.").
		Envar("ONAIR_TRANSPORT_MQTT_CLIENT_ID").
		StringVar(&this.ClientId)
	using.Flag("transport.mqtt.username", "User to authenticate at the broker with. If empty the connection is anonymous.").
		Envar("ONAIR_TRANSPORT_MQTT_USERNAME").
		StringVar(&this.Username)
	using.Flag("transport.mqtt.password", "Password of the broker user. If required and absent it will be asked for on the terminal.").
		Envar("ONAIR_TRANSPORT_MQTT_PASSWORD").
		StringVar(&this.Password)
	using.Flag("transport.mqtt.topic", "Topic all instances exchange their state on.").
		Envar("ONAIR_TRANSPORT_MQTT_TOPIC").
		StringVar(&this.Topic)
	using.Flag("transport.mqtt.availabilityTopic", "Topic to announce this instance's availability on. Empty disables the announcement.").
		Envar("ONAIR_TRANSPORT_MQTT_AVAILABILITY_TOPIC").
		StringVar(&this.AvailabilityTopic)
	using.Flag("transport.mqtt.qos", "Quality of service for published and subscribed messages (0, 1 or 2).").
		Envar("ONAIR_TRANSPORT_MQTT_QOS").
		Uint8Var(&this.Qos)
	using.Flag("transport.mqtt.cleanSession", "Whether to start with a clean session instead of resuming the previous one.").
		Envar("ONAIR_TRANSPORT_MQTT_CLEAN_SESSION").
		BoolVar(&this.CleanSession)
}
