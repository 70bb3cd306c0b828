package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/tuiter/internal/config"
	"github.com/iliyamo/tuiter/internal/logging"
	"github.com/iliyamo/tuiter/internal/queue"
)

func main() {
	config.LoadDotEnv("")
	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")).WithField("component", "activity-consumer")
	events := config.LoadEventsConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: events.URL, Queue: events.Queue, Dir: events.LogDir, Log: log}
	log.WithField("queue", events.Queue).Info("consuming")
	if err := c.Run(ctx); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("consumer stopped")
	}
}
