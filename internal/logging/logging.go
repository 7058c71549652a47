package logging

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/config"
)

// Setup points logrus at a size-rotated file and applies the configured
// level. An empty LogPath leaves output on stderr.
func Setup(conf config.AppConfig) error {
	if conf.Logging.LogPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.Logging.LogPath,
			MaxSize:    32, // megabytes
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level, err := log.ParseLevel(conf.Logging.LogLevel)
	if err != nil {
		return fmt.Errorf("unknown logging level %q: %w", conf.Logging.LogLevel, err)
	}
	log.SetLevel(level)

	log.SetFormatter(&log.TextFormatter{
		PadLevelText:    true,
		DisableColors:   true,
		TimestampFormat: time.DateTime,
	})
	return nil
}
