// Package logging builds the zap logger used across the tool: a console
// core on stderr, tee'd with a rotating JSON file when a log path is set.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects sinks and verbosity.
type Options struct {
	Level    string // debug | info | warn | error
	FilePath string // "" disables the file sink
	Console  io.Writer
	JSON     bool // JSON console encoder instead of the human one
}

// New returns a logger and a close func that flushes and releases sinks.
func New(o Options) (*zap.Logger, func() error, error) {
	lvl, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		return nil, nil, err
	}

	fileEnc := zap.NewProductionEncoderConfig()
	fileEnc.TimeKey = "timestamp"
	fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEnc.MessageKey = "message"
	fileEnc.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if o.Console != nil {
		var enc zapcore.Encoder
		if o.JSON {
			enc = zapcore.NewJSONEncoder(fileEnc)
		} else {
			cc := zap.NewDevelopmentEncoderConfig()
			cc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
			enc = zapcore.NewConsoleEncoder(cc)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(o.Console)), lvl))
	}

	var rotator *lumberjack.Logger
	if o.FilePath != "" {
		rotator = &lumberjack.Logger{
			Filename:   o.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(rotator), lvl))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }, nil
	}
	l := zap.New(zapcore.NewTee(cores...))
	closeFn := func() error {
		_ = l.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return l, closeFn, nil
}
