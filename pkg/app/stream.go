package app

import (
	"context"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/onair"
)

// Stream polls the local hardware state and publishes it whenever it changes.
func (this *App) Stream(ctx context.Context) error {
	if err := this.Probe.Initialize(&this.config.Probe); err != nil {
		return err
	}
	defer func() { _ = this.Probe.Dispose() }()

	if err := this.Transport.Initialize(&this.config.Transport, this.alwaysSaveConf); err != nil {
		return err
	}
	defer func() { _ = this.Transport.Dispose() }()

	source, err := this.sourceName()
	if err != nil {
		return err
	}

	log.With("source", source).
		Info("Watching for changes in local audio/video state.")

	var last *onair.Payload
	first := true
	for {
		if first {
			first = false
		} else {
			log.With("interval", this.config.PollInterval).
				Debug("Wait until the next poll...")
			select {
			case <-ctx.Done():
				log.Debug("Poll loop interrupted.")
				return nil
			case <-time.After(this.config.PollInterval):
			}
		}

		state, err := this.Probe.Sample()
		if err != nil {
			log.WithError(err).
				Error("Cannot inspect local audio/video state.")
			continue
		}

		payload := onair.Payload{
			Source: source,
			Audio:  state.Audio,
			Video:  state.Video,
		}
		if last != nil && last.EqualState(payload) {
			log.With("payload", payload).
				Debug("Local state is unchanged.")
			continue
		}

		payload.SentAt = time.Now()
		data, err := payload.Encode()
		if err != nil {
			return err
		}
		if err := this.Transport.Publish(data); err != nil {
			log.WithError(err).
				Error("Cannot publish state change; will retry on the next poll.")
			continue
		}

		last = &payload
		log.With("payload", payload).
			Info("Published state change.")
	}
}
