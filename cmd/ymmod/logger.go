package main

import (
	log "github.com/sirupsen/logrus"
)

// setupLogging configures the process-wide logrus logger.
func setupLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// logrusLogger adapts logrus to the pipeline's structured Logger interface.
type logrusLogger struct{}

func (l *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.WithFields(fieldsFrom(keysAndValues)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	log.WithFields(fieldsFrom(keysAndValues)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.WithFields(fieldsFrom(keysAndValues)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	log.WithFields(fieldsFrom(keysAndValues)).Error(msg)
}

// fieldsFrom converts alternating key-value pairs into logrus fields. A
// trailing key without a value is kept with a nil value rather than dropped.
func fieldsFrom(keysAndValues []interface{}) log.Fields {
	fields := make(log.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(keysAndValues) {
			fields[key] = keysAndValues[i+1]
		} else {
			fields[key] = nil
		}
	}
	return fields
}
