package logging

import (
	"time"

	ddhook "github.com/bin3377/logrus-datadog-hook"
	"github.com/sirupsen/logrus"
)

// DatadogUSHost is the default log intake.
const DatadogUSHost = "http-intake.logs.datadoghq.com"

const (
	datadogFlushEvery = 30 * time.Second
	datadogRetries    = 3
)

// ShipToDatadog adds a hook that forwards info and above to the Datadog log
// intake in batches.  Without an API key the logger is left as is.
func ShipToDatadog(log *logrus.Entry, host, apiKey string) {
	if apiKey == "" {
		return
	}
	if host == "" {
		host = DatadogUSHost
	}
	hook := ddhook.NewHook(
		host,
		apiKey,
		datadogFlushEvery,
		datadogRetries,
		logrus.InfoLevel,
		&logrus.JSONFormatter{},
		ddhook.Options{},
	)
	log.Logger.Hooks.Add(hook)
}
