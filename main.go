package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	_ "github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/tommilligan/on-air/pkg/app"
)

func main() {
	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()

	cmd := kingpin.New(os.Args[0], "Shares this machine's microphone and camera usage with the room and drives an on-air light from everyone's.")
	a.SetupConfiguration(cmd)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("always").
		SetValue(lv.Consumer.Formatter.ColorMode)

	streamCmd := cmd.Command("stream", "Watch this machine's audio/video devices and publish every change.")
	listenCmd := cmd.Command("listen", "Receive everyone's state and drive the indicator light.")

	parsed := kingpin.MustParse(cmd.Parse(os.Args[1:]))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Initialize(); err != nil {
		fail(err)
	}

	switch parsed {
	case streamCmd.FullCommand():
		if err := a.Stream(ctx); err != nil {
			fail(err)
		}
	case listenCmd.FullCommand():
		if err := a.Listen(ctx); err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	log.WithError(err).
		Error("Going down...")
	os.Exit(1)
}
