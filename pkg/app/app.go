package app

import (
	"os"

	"dario.cat/mergo"
	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/indicator/facade"
	"github.com/tommilligan/on-air/pkg/probe"
	"github.com/tommilligan/on-air/pkg/transport/mqtt"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

// App wires the shared collaborators of both commands: Stream publishes this
// machine's hardware usage, Listen displays the whole room's.
type App struct {
	Probe     probe.Probe
	Transport mqtt.Transport
	Indicator facade.Facade

	ConfigurationFile string

	configFromFlags Configuration
	config          Configuration
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		Envar("ONAIR_CONFIGURATION").
		StringVar(&this.ConfigurationFile)
}

// Initialize loads the configuration file (if any) over the defaults and lets
// explicitly provided flags win over both.
func (this *App) Initialize() error {
	if fn := this.ConfigurationFile; fn != "" {
		if err := this.config.loadFromFile(fn, false); err != nil {
			return err
		}
	} else {
		if err := this.config.loadDefault(true); err != nil {
			return err
		}
	}

	if err := mergo.Merge(&this.config, this.configFromFlags, mergo.WithOverride); err != nil {
		return err
	}

	return this.saveConf(false)
}

func (this *App) alwaysSaveConf() error {
	return this.saveConf(true)
}

func (this *App) saveConf(always bool) error {
	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.ConfigurationFile
	if fn == "" {
		fn = defaultConfigurationFile()
	}
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

// sourceName resolves the name under which this machine reports its state.
func (this *App) sourceName() (string, error) {
	if v := this.config.Source; v != "" {
		return v, nil
	}
	return os.Hostname()
}
