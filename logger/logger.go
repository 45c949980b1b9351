package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init must run before any package logs.
var Log = logrus.New()

func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel parses level and applies it, keeping the current level when the
// value is not a known logrus level.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("Unknown log level, keeping current level")
		return
	}
	Log.SetLevel(lvl)
}

// MaskCard renders a card number as its first and last four digits.
func MaskCard(card string) string {
	if len(card) < 8 {
		return "****"
	}
	return card[:4] + "********" + card[len(card)-4:]
}
