package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger from the textual level and format
// found in the configuration. Unknown levels fall back to info.
func Setup(level, format string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// UserLogger returns an entry tagged with the acting user.
func UserLogger(userID uint, email string) *logrus.Entry {
	fields := logrus.Fields{"user_id": userID}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		fields["email"] = trimmed
	}
	return logrus.WithFields(fields)
}
