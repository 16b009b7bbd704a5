package app

import (
	"context"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/display"
	"github.com/tommilligan/on-air/pkg/onair"
)

// Listen consumes the room's state updates and drives the indicator.
//
// The transport delivers on its own goroutines; everything is funneled through
// one channel into a single consumer, so the aggregation and the resulting
// display transition of one message never interleave with another's.
func (this *App) Listen(ctx context.Context) error {
	if err := this.Transport.Initialize(&this.config.Transport, this.alwaysSaveConf); err != nil {
		return err
	}
	defer func() { _ = this.Transport.Dispose() }()

	if err := this.Indicator.Initialize(&this.config.Indicator, this.alwaysSaveConf); err != nil {
		return err
	}
	defer func() { _ = this.Indicator.Dispose() }()

	d := display.New(&this.Indicator, &this.config.Display)
	// The indicator goes dark on every exit path, interrupted or not.
	defer func() { _ = d.Close() }()

	aggregator := onair.NewAggregator()

	messages := make(chan []byte, 16)
	if err := this.Transport.Subscribe(func(data []byte) {
		select {
		case messages <- data:
		case <-ctx.Done():
		}
	}); err != nil {
		return err
	}

	log.Info("Listening for published updates.")
	for {
		select {
		case <-ctx.Done():
			log.Debug("Listen loop interrupted.")
			return nil
		case data := <-messages:
			this.handleMessage(aggregator, d, data)
		}
	}
}

// handleMessage processes one inbound message end to end. A bad message is
// logged and dropped; it never takes the service down.
func (this *App) handleMessage(aggregator *onair.Aggregator, d *display.Display, data []byte) {
	payload, err := onair.DecodePayload(data)
	if err != nil {
		log.WithError(err).
			With("data", string(data)).
			Warn("Dropping malformed message.")
		return
	}

	if w := this.config.StalenessWindow; w > 0 && !payload.SentAt.IsZero() && time.Since(payload.SentAt) > w {
		log.With("payload", payload).
			With("sentAt", payload.SentAt).
			Debug("Discarding stale message.")
		return
	}

	combined, changed, err := aggregator.Update(payload)
	if err != nil {
		log.WithError(err).
			With("payload", payload).
			Warn("Dropping unprocessable message.")
		return
	}
	if !changed {
		log.With("payload", payload).
			Debug("Combined state is unchanged.")
		return
	}

	log.With("state", combined).
		Info("Combined on-air state changed.")
	if err := d.Apply(combined); err != nil {
		log.WithError(err).
			Error("Cannot drive the indicator.")
	}
}
