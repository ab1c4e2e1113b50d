package logging

import (
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// timeLayout is RFC 3339 UTC with fixed microsecond precision.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Options shape the process logger.
type Options struct {
	Level zapcore.Level
	// Service and Version populate Cloud Logging's serviceContext so Error Reporting
	// groups errors per deployed revision. Both are optional.
	Service string
	Version string
}

var (
	current atomic.Pointer[zap.Logger]
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init installs the process logger writing JSON to stdout. Until Init runs, Logger
// returns an info level logger without service context.
func Init(opts Options) {
	install(zapcore.Lock(os.Stdout), opts)
}

func install(w zapcore.WriteSyncer, opts Options) {
	level.SetLevel(opts.Level)
	current.Store(newLogger(w, opts))
}

func newLogger(w zapcore.WriteSyncer, opts Options) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = encodeTime
	enc.LevelKey = "severity"
	enc.EncodeLevel = encodeSeverity
	enc.MessageKey = "message"
	enc.CallerKey = "caller"

	logger := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, level), zap.AddCaller(), zap.ErrorOutput(w))
	if svc := serviceContext(opts); len(svc) > 0 {
		logger = logger.With(zap.Dict("serviceContext", svc...))
	}
	return logger
}

func serviceContext(opts Options) []zap.Field {
	var fields []zap.Field
	if opts.Service != "" {
		fields = append(fields, zap.String("service", opts.Service))
	}
	if opts.Version != "" {
		fields = append(fields, zap.String("version", opts.Version))
	}
	return fields
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(timeLayout))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	severity := "DEFAULT"
	switch l {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARNING"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel:
		severity = "CRITICAL"
	case zapcore.PanicLevel:
		severity = "ALERT"
	case zapcore.FatalLevel:
		severity = "EMERGENCY"
	}
	enc.AppendString(severity)
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	current.CompareAndSwap(nil, newLogger(zapcore.Lock(os.Stdout), Options{}))
	return current.Load()
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}
