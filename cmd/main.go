package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/imaginepro/imaginepro-go/pkg/client"
	"github.com/imaginepro/imaginepro-go/pkg/config"
	"github.com/imaginepro/imaginepro-go/pkg/types"
)

func main() {
	prompt := flag.String("prompt", "", "prompt to generate an image for")
	upscale := flag.Int("upscale", 0, "grid index to upscale once generation finishes (1-4)")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: imaginepro -prompt \"a pretty cat playing with a puppy\" [-upscale 1]")
		os.Exit(1)
	}

	// .env is optional; real environments set IMAGINEPRO_* directly
	_ = godotenv.Load()

	var (
		opts config.Options
		err  error
	)
	if *configFile != "" {
		opts, err = config.LoadOptionsFile(*configFile)
	} else {
		opts, err = config.LoadOptions()
	}
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	sdk, err := client.NewImagineProClient(opts)
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}

	ctx := context.Background()

	task, err := sdk.Imagine(ctx, types.ImagineParams{Prompt: *prompt})
	if err != nil {
		log.Fatalf("imagine failed: %v", err)
	}
	log.Infof("task accepted: %s", task.MessageID)

	msg, err := sdk.FetchMessage(ctx, task.MessageID, 0)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
	if msg.Status == types.StatusFail {
		log.Fatalf("generation failed: %s", msg.Error)
	}
	log.Infof("image ready: %s", msg.URI)

	if *upscale > 0 {
		task, err = sdk.Upscale(ctx, types.UpscaleParams{MessageID: msg.MessageID, Index: *upscale})
		if err != nil {
			log.Fatalf("upscale failed: %v", err)
		}
		up, err := sdk.FetchMessage(ctx, task.MessageID, 0)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		if up.Status == types.StatusFail {
			log.Fatalf("upscale failed: %s", up.Error)
		}
		log.Infof("upscaled image: %s", up.URI)
	}
}
