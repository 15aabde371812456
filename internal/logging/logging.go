package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logger: JSON output with ISO 8601 timestamps.
func Setup() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}
