package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/caarlos0/env/v11"

	"custom-updater/internal/config"
	"custom-updater/pkg/content"
	"custom-updater/pkg/customupdate"
	"custom-updater/pkg/graph"
	"custom-updater/pkg/session"
)

// Sends a single custom update, e.g.:
//   ACCESS_TOKEN=... CONTEXT_TOKEN_ID=... MESSAGE="Your turn" MEDIA_URL=https://... custom-update

type updateConfig struct {
	ContextTokenID string `env:"CONTEXT_TOKEN_ID,required"`
	Message        string `env:"MESSAGE,required"`
	MediaURL       string `env:"MEDIA_URL"`
	MediaType      string `env:"MEDIA_TYPE" envDefault:"photo"`
	ImagePath      string `env:"IMAGE_PATH"`
	CTA            string `env:"CTA"`
	Payload        string `env:"PAYLOAD"`
}

type result struct {
	success bool
	err     error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)

		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	var uc updateConfig
	if err := env.Parse(&uc); err != nil {
		logger.Error("invalid update settings", slog.String("err", err.Error()))

		os.Exit(1)
	}

	store := session.NewStore(cfg.Token())
	requester := customupdate.New(logger, graph.New(logger, cfg.GraphURL, store))

	var opts []content.Option
	if uc.CTA != "" {
		opts = append(opts, content.WithCTA(uc.CTA))
	}
	if uc.Payload != "" {
		opts = append(opts, content.WithPayload(uc.Payload))
	}

	resCh := make(chan result, 1)
	done := func(success bool, err error) {
		resCh <- result{success: success, err: err}
	}

	switch {
	case uc.ImagePath != "":
		img, readErr := os.ReadFile(uc.ImagePath)
		if readErr != nil {
			logger.Error("failed to read image", slog.String("err", readErr.Error()))

			os.Exit(1)
		}
		err = requester.SendImage(store.Current(), content.NewImage(uc.ContextTokenID, uc.Message, img, opts...), done)
	case uc.MediaURL != "":
		media := content.URLMedia{URL: uc.MediaURL, Type: content.MediaType(uc.MediaType)}
		err = requester.SendMedia(store.Current(), content.NewMedia(uc.ContextTokenID, uc.Message, media, opts...), done)
	default:
		err = errors.New("either MEDIA_URL or IMAGE_PATH must be set")
	}
	if err != nil {
		logger.Error("failed to send custom update", slog.String("err", err.Error()))

		os.Exit(1)
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Start()
	res := <-resCh
	spin.Stop()

	if res.err != nil {
		fmt.Println("Custom update failed:", res.err)

		os.Exit(1)
	}
	fmt.Println(">> success:", res.success)
}
