package mqtt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/credentials"
	"github.com/tommilligan/on-air/pkg/transport"
)

// Transport is the MQTT rendition of transport.Transport. It publishes and
// receives payloads on a single topic, with QoS 1 (at-least-once) as the
// default, and resubscribes itself whenever the broker connection comes back.
type Transport struct {
	conf         *Configuration
	saveConfFunc func() error

	client   MQTT.Client
	handlers []transport.Handler
	mutex    sync.RWMutex
}

func (this *Transport) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.conf = conf
	this.saveConfFunc = saveConfFunc

	username, password, err := this.resolveCredentials()
	if err != nil {
		return err
	}

	opts := MQTT.NewClientOptions()
	opts.AddBroker(conf.Broker)
	opts.SetClientID(this.clientId())
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetCleanSession(conf.CleanSession)
	opts.SetAutoReconnect(true)
	opts.OnConnect = this.onConnect
	opts.OnConnectionLost = func(_ MQTT.Client, err error) {
		log.WithError(err).
			Warn("Connection to broker lost; reconnecting...")
	}
	if t := conf.AvailabilityTopic; t != "" {
		opts.SetWill(t, "offline", conf.Qos, true)
	}

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("cannot connect to broker %s: %w", conf.Broker, token.Error())
	}
	this.client = client

	return nil
}

func (this *Transport) onConnect(client MQTT.Client) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	log.With("broker", this.conf.Broker).
		Info("Connected to broker.")

	if t := this.conf.AvailabilityTopic; t != "" {
		client.Publish(t, this.conf.Qos, true, "online")
	}

	for _, handler := range this.handlers {
		if err := this.subscribe(client, handler); err != nil {
			log.WithError(err).
				Error("Cannot restore subscription.")
		}
	}
}

func (this *Transport) Publish(data []byte) error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if this.client == nil {
		return fmt.Errorf("not initialized")
	}

	token := this.client.Publish(this.conf.Topic, this.conf.Qos, false, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("cannot publish to %s: %w", this.conf.Topic, token.Error())
	}
	return nil
}

// Subscribe registers the handler for every payload arriving on the topic.
// The handler is invoked from the client's delivery goroutines.
func (this *Transport) Subscribe(handler transport.Handler) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.client == nil {
		return fmt.Errorf("not initialized")
	}

	this.handlers = append(this.handlers, handler)
	return this.subscribe(this.client, handler)
}

func (this *Transport) subscribe(client MQTT.Client, handler transport.Handler) error {
	token := client.Subscribe(this.conf.Topic, this.conf.Qos, func(_ MQTT.Client, message MQTT.Message) {
		handler(message.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("cannot subscribe to %s: %w", this.conf.Topic, token.Error())
	}

	log.With("topic", this.conf.Topic).
		Info("Subscribed.")
	return nil
}

func (this *Transport) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if client := this.client; client != nil {
		if t := this.conf.AvailabilityTopic; t != "" && client.IsConnected() {
			client.Publish(t, this.conf.Qos, true, "offline").Wait()
		}
		client.Disconnect(250)
		this.client = nil
	}
	this.handlers = nil
	return nil
}

func (this *Transport) GetType() transport.Type {
	return transport.TypeMqtt
}

// clientId returns the configured client id, or derives a unique one from the
// hostname. Uniqueness matters: a broker disconnects the older of two clients
// sharing an id.
func (this *Transport) clientId() string {
	if v := this.conf.ClientId; v != "" {
		return v
	}

	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Sprintf("on-air-%s", hex.EncodeToString(suffix))
	}
	return fmt.Sprintf("on-air-%s-%s", hostname, hex.EncodeToString(suffix))
}

func (this *Transport) resolveCredentials() (username, password string, err error) {
	var stored credentials.Credentials
	if _, err := stored.ReadFromStore(); err != nil {
		return "", "", err
	}

	username = this.conf.Username
	if username == "" {
		username = stored.BrokerUsername
	}
	if username == "" {
		// Anonymous broker access.
		return "", "", nil
	}

	password = this.conf.Password
	if password == "" && username == stored.BrokerUsername {
		password = stored.BrokerPassword
	}
	if password == "" {
		if err := common.RequestStringContentIfRequiredFromTerminal(&password, fmt.Sprintf("password of broker user %q", username), false, true); err != nil {
			return "", "", err
		}
		if err := this.storeCredentials(username, password); err != nil {
			log.WithError(err).
				Warn("Cannot store broker credentials. The app will work now, but next time the password will be asked for again.")
		}
	}

	return username, password, nil
}

func (this *Transport) storeCredentials(username, password string) error {
	var stored credentials.Credentials
	if _, err := stored.ReadFromStore(); err != nil {
		return err
	}
	stored.BrokerUsername = username
	stored.BrokerPassword = password

	supported, err := stored.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Username = username
	this.conf.Password = password
	return this.saveConfFunc()
}
