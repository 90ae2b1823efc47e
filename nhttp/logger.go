package nhttp

import "fmt"

// BasicLogger is the logging interface the adapter needs.  It is
// deliberately minimal so that almost any logger can be adapted to
// it.
type BasicLogger interface {
	Debug(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
}

// StdLogger is implemented by the standard library's log.Logger.
type StdLogger interface {
	Print(v ...interface{})
}

// LoggerFromStd adapts a standard library style logger to
// BasicLogger.  Field maps are flattened into key=value strings.
func LoggerFromStd(log StdLogger) BasicLogger {
	return wrappedStdLogger{log: log}
}

type wrappedStdLogger struct {
	log StdLogger
}

func (std wrappedStdLogger) print(msg string, fields []map[string]interface{}) {
	if len(fields) == 0 {
		std.log.Print(msg)
		return
	}
	vals := make([]interface{}, 1, len(fields)*4+1)
	vals[0] = msg
	for _, m := range fields {
		for k, v := range m {
			vals = append(vals, " "+k+"="+fmt.Sprint(v))
		}
	}
	std.log.Print(vals...)
}

func (std wrappedStdLogger) Debug(msg string, fields ...map[string]interface{}) {
	std.print(msg, fields)
}

func (std wrappedStdLogger) Warn(msg string, fields ...map[string]interface{}) {
	std.print(msg, fields)
}

func (std wrappedStdLogger) Error(msg string, fields ...map[string]interface{}) {
	std.print(msg, fields)
}

// NoLogger returns a BasicLogger that discards everything.  It is
// the default.
func NoLogger() BasicLogger {
	return nilLogger{}
}

type nilLogger struct{}

var _ BasicLogger = nilLogger{}

func (nilLogger) Debug(string, ...map[string]interface{}) {}
func (nilLogger) Warn(string, ...map[string]interface{})  {}
func (nilLogger) Error(string, ...map[string]interface{}) {}
