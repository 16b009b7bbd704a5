package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/display"
	"github.com/tommilligan/on-air/pkg/indicator/facade"
	"github.com/tommilligan/on-air/pkg/probe"
	"github.com/tommilligan/on-air/pkg/transport/mqtt"
)

func NewConfiguration() Configuration {
	return Configuration{
		PreventAutoSave: false,
		Source:          "",

		PollInterval:    5 * time.Second,
		StalenessWindow: 1 * time.Minute,

		Probe:     probe.NewConfiguration(),
		Transport: mqtt.NewConfiguration(),
		Indicator: facade.NewConfiguration(),
		Display:   display.NewConfiguration(),
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	// Source is the name this machine reports its state under. Empty means
	// the hostname.
	Source string `yaml:"source,omitempty"`

	// PollInterval is how often the local hardware state is checked while
	// streaming.
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
	// StalenessWindow is how old a received payload may be before the
	// listener discards it instead of displaying outdated state.
	StalenessWindow time.Duration `yaml:"stalenessWindow,omitempty"`

	Probe     probe.Configuration   `yaml:"probe,omitempty"`
	Transport mqtt.Configuration    `yaml:"transport,omitempty"`
	Indicator facade.Configuration  `yaml:"indicator,omitempty"`
	Display   display.Configuration `yaml:"display,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("ONAIR_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("source", "Name of this source of events. Defaults to the system hostname.").
		Envar("ONAIR_SOURCE").
		StringVar(&this.Source)
	using.Flag("pollInterval", "How often the local audio/video state is checked.").
		Envar("ONAIR_POLL_INTERVAL").
		DurationVar(&this.PollInterval)
	using.Flag("stalenessWindow", "How old a received message may be before it is discarded. 0 disables the check.").
		Envar("ONAIR_STALENESS_WINDOW").
		DurationVar(&this.StalenessWindow)

	this.Probe.SetupConfiguration(using)
	this.Transport.SetupConfiguration(using)
	this.Indicator.SetupConfiguration(using)
	this.Display.SetupConfiguration(using)
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(this)
}

func (this *Configuration) loadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) loadDefault(ignoreNotFound bool) error {
	return this.loadFromFile(defaultConfigurationFile(), ignoreNotFound)
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(this)
}

func (this *Configuration) saveToFile(fn string) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}

	return nil
}

func defaultConfigurationFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "on-air", "configuration.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "configuration.yml"
	}
	return filepath.Join(home, ".config", "on-air", "configuration.yml")
}
