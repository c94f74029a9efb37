package jsd

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// timeLayout is the banner time format, [2026-10-14.09:30:00]
const timeLayout = "[2006-01-02.15:04:05]"

// NewLogger gives a console logger writing to w. The level comes from
// the verbose and quiet flags.
func NewLogger(flags *CmdFlag, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	switch {
	case flags.Verbose:
		level = zapcore.DebugLevel
	case flags.Quiet:
		level = zapcore.ErrorLevel
	}
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	config.CallerKey = zapcore.OmitKey
	config.StacktraceKey = zapcore.OmitKey
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}
