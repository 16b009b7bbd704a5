package facade

import (
	"fmt"
	"sync"

	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/indicator"
	"github.com/tommilligan/on-air/pkg/indicator/homeassistant"
	"github.com/tommilligan/on-air/pkg/indicator/hue"
)

// Facade holds the configured indicator implementation. While no
// implementation is held (type "none", or not yet initialized) every command
// is a no-op: the rest of the application behaves exactly the same, just
// without the physical effect.
type Facade struct {
	indicator.Indicator

	lock sync.RWMutex
}

func (this *Facade) SetColor(c indicator.Color) error {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Indicator; v != nil {
		return v.SetColor(c)
	}
	return nil
}

func (this *Facade) Off() error {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Indicator; v != nil {
		return v.Off()
	}
	return nil
}

func (this *Facade) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.lock.Lock()
	defer this.lock.Unlock()

	if this.Indicator != nil {
		return nil
	}

	switch conf.Type {
	case indicator.TypeHue:
		var buf hue.Hue
		if err := buf.Initialize(&conf.Hue, saveConfFunc); err != nil {
			return err
		}
		this.Indicator = &buf
	case indicator.TypeHomeAssistant:
		var buf homeassistant.HomeAssistant
		if err := buf.Initialize(&conf.HomeAssistant, saveConfFunc); err != nil {
			return err
		}
		this.Indicator = &buf
	case indicator.TypeNone:
		log.Info("No indicator device configured; state changes will only be logged.")
	default:
		return fmt.Errorf("unsupported indicator type: %v", conf.Type)
	}

	return nil
}

func (this *Facade) Dispose() error {
	this.lock.Lock()
	defer this.lock.Unlock()

	defer func() {
		this.Indicator = nil
	}()

	if v := this.Indicator; v != nil {
		if disposable, ok := v.(interface{ Dispose() error }); ok {
			return disposable.Dispose()
		}
	}
	return nil
}

func (this *Facade) GetType() indicator.Type {
	this.lock.RLock()
	defer this.lock.RUnlock()

	if v := this.Indicator; v != nil {
		return v.GetType()
	}

	return indicator.TypeNone
}
