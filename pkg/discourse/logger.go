package discourse

import (
	"sort"

	"github.com/hashicorp/go-hclog"
)

// NewHCLogger adapts an hclog.Logger to the Logger interface.
func NewHCLogger(logger hclog.Logger) Logger {
	if logger == nil {
		return NopLogger()
	}

	return &hcLogger{logger: logger}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

type hcLogger struct {
	logger hclog.Logger
}

func (l *hcLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fieldArgs(fields)...)
}

func (l *hcLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fieldArgs(fields)...)
}

func (l *hcLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fieldArgs(fields)...)
}

func (l *hcLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fieldArgs(fields)...)
}

// fieldArgs flattens a field map into hclog key/value pairs in key order.
func fieldArgs(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
