package hue

import (
	"fmt"
	"sync"
	"time"

	"github.com/amimof/huego"
	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/credentials"
	"github.com/tommilligan/on-air/pkg/indicator"
)

const appName = "github.com/tommilligan/on-air"

// Hue drives Philips Hue lights and/or groups as the room's indicator. The
// lights to handle are selected by name (see Configuration.Name).
type Hue struct {
	conf         *Configuration
	saveConfFunc func() error

	lights      []huego.Light
	groups      []huego.Group
	credentials credentials.Credentials
	mutex       sync.Mutex
}

func (this *Hue) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.conf = conf
	this.saveConfFunc = saveConfFunc

	v, err := this.resolveCredentials()
	if err != nil {
		return err
	}
	this.credentials = v

	if err := this.Update(); err != nil {
		return err
	}

	return nil
}

// Update rediscovers the lights and groups this indicator handles.
func (this *Hue) Update() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return this.update()
}

func (this *Hue) update() error {
	bridge, err := this.bridge()
	if err != nil {
		return err
	}

	lights, err := this.discoverLights(bridge)
	if err != nil {
		return err
	}
	groups, err := this.discoverGroups(bridge)
	if err != nil {
		return err
	}

	if len(lights) == 0 && len(groups) == 0 {
		log.With("name", this.conf.Name).
			Warn("No hue lights or groups match; nothing will light up.")
	}

	this.lights = lights
	this.groups = groups

	return nil
}

func (this *Hue) discoverLights(bridge *huego.Bridge) (result []huego.Light, _ error) {
	if this.conf.Kinds.Has(KindLight) {
		candidates, err := bridge.GetLights()
		if err != nil {
			return nil, fmt.Errorf("cannot discover lights of bridge %s: %w", bridge.Host, err)
		}
		for _, candidate := range candidates {
			if this.conf.Name.MatchString(candidate.Name) {
				if candidate.State == nil {
					candidate.State = &huego.State{}
				}
				result = append(result, candidate)
			}
		}
	}
	return
}

func (this *Hue) discoverGroups(bridge *huego.Bridge) (result []huego.Group, _ error) {
	if this.conf.Kinds.Has(KindGroup) {
		candidates, err := bridge.GetGroups()
		if err != nil {
			return nil, fmt.Errorf("cannot discover groups of bridge %s: %w", bridge.Host, err)
		}
		for _, candidate := range candidates {
			if this.conf.Name.MatchString(candidate.Name) {
				if candidate.State == nil {
					candidate.State = &huego.State{}
				}
				result = append(result, candidate)
			}
		}
	}
	return
}

func (this *Hue) SetColor(c indicator.Color) error {
	return this.ensure(stateFor(c, this.conf.Brightness))
}

func (this *Hue) Off() error {
	return this.ensure(huego.State{On: false})
}

func (this *Hue) ensure(target huego.State) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if len(this.lights) == 0 && len(this.groups) == 0 {
		if err := this.update(); err != nil {
			return err
		}
	}

	bridge, err := this.bridge()
	if err != nil {
		return err
	}
	for i, v := range this.lights {
		if statesDiffer(v.State, &target) {
			if _, err := bridge.SetLightState(v.ID, target); err != nil {
				return fmt.Errorf("cannot switch light %q#%d to %v: %w", v.Name, v.ID, target, err)
			}
			buf := target
			v.State = &buf
			this.lights[i] = v
		}
	}
	for i, v := range this.groups {
		if statesDiffer(v.State, &target) {
			if _, err := bridge.SetGroupState(v.ID, target); err != nil {
				return fmt.Errorf("cannot switch group %q#%d to %v: %w", v.Name, v.ID, target, err)
			}
			buf := target
			v.State = &buf
			this.groups[i] = v
		}
	}
	return nil
}

func statesDiffer(current, target *huego.State) bool {
	if current == nil {
		return true
	}
	if !target.On {
		return current.On
	}
	return !current.On ||
		current.Bri != target.Bri ||
		current.Hue != target.Hue ||
		current.Sat != target.Sat
}

func (this *Hue) bridge() (*huego.Bridge, error) {
	v := this.credentials
	if v.IsHueZero() {
		return nil, fmt.Errorf("not paired with hue bridge")
	}
	return huego.New(v.HueBridge, v.HueUser), nil
}

func (this *Hue) resolveCredentials() (credentials.Credentials, error) {
	if u := this.conf.User; u != "" {
		bridge, err := this.discoverBridge()
		if err != nil {
			return credentials.Credentials{}, err
		}

		return credentials.Credentials{
			HueBridge: bridge.Host,
			HueUser:   u,
		}, nil
	}

	if this.conf.Pair {
		v, err := this.pair()
		if err != nil {
			return credentials.Credentials{}, err
		}
		return v, nil
	}

	v, err := this.readCredentials()
	if err != nil {
		return credentials.Credentials{}, err
	}

	if !v.IsHueZero() {
		return v, nil
	}

	return this.pair()
}

func (this *Hue) discoverBridge() (*huego.Bridge, error) {
	if this.conf.Bridge != "" {
		return &huego.Bridge{
			Host: this.conf.Bridge,
		}, nil
	}

	return huego.Discover()
}

func (this *Hue) pair() (credentials.Credentials, error) {
	bridge, err := this.discoverBridge()
	if err != nil {
		return credentials.Credentials{}, err
	}

	for {
		log.Info("Wait for hue link button been pressed...")
		user, err := bridge.CreateUser(appName)
		if apiErr, ok := common.AsError[*huego.APIError](err); ok && apiErr.Type == 101 && apiErr.Description == "link button not pressed" {
			time.Sleep(1 * time.Second)
			continue
		} else if err != nil {
			return credentials.Credentials{}, fmt.Errorf("was not able to pair with %s: %w", bridge.Host, err)
		} else {
			v := credentials.Credentials{
				HueBridge: bridge.Host,
				HueUser:   user,
			}

			if err := this.storeCredentials(v); err != nil {
				log.WithError(err).
					Warn("Cannot store credentials. The app will work now, but next time the pairing might be required again.")
			}

			log.With("bridge", bridge.Host).
				Info("Successful paired.")
			return v, nil
		}
	}
}

func (this *Hue) Dispose() error {
	this.conf = nil
	this.saveConfFunc = nil
	return nil
}

func (this *Hue) GetType() indicator.Type {
	return indicator.TypeHue
}

func (this *Hue) readCredentials() (credentials.Credentials, error) {
	var v credentials.Credentials
	if _, err := v.ReadFromStore(); err != nil {
		return credentials.Credentials{}, err
	}

	if v.HueBridge == "" {
		v.HueBridge = this.conf.Bridge
	}
	if v.HueUser == "" {
		v.HueUser = this.conf.User
	}

	return v, nil
}

func (this *Hue) storeCredentials(v credentials.Credentials) error {
	var stored credentials.Credentials
	if _, err := stored.ReadFromStore(); err != nil {
		return err
	}
	stored.HueBridge = v.HueBridge
	stored.HueUser = v.HueUser

	supported, err := stored.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Bridge = v.HueBridge
	this.conf.User = v.HueUser
	return this.saveConfFunc()
}
