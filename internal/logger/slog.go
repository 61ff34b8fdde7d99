package logger

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// slogBridge adapts a zerolog logger to slog.Handler so packages that speak
// log/slog write through the same zerolog pipeline as everything else.
type slogBridge struct {
	zl zerolog.Logger
}

func NewSlog(zl *zerolog.Logger) *slog.Logger {
	return slog.New(&slogBridge{zl: *zl})
}

func (b *slogBridge) Enabled(_ context.Context, lvl slog.Level) bool {
	return bridgeLevel(lvl) >= zerolog.GlobalLevel()
}

func (b *slogBridge) Handle(ctx context.Context, r slog.Record) error {
	ev := FromContext(ctx, &b.zl).WithLevel(bridgeLevel(r.Level))
	r.Attrs(func(a slog.Attr) bool {
		eventField(ev, a)
		return true
	})
	ev.Msg(r.Message)
	return nil
}

// WithAttrs binds the attrs onto a child zerolog logger so they are encoded
// once, not re-walked on every record.
func (b *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	w := b.zl.With()
	for _, a := range attrs {
		w = contextField(w, a)
	}
	return &slogBridge{zl: w.Logger()}
}

// group nesting is ignored; nothing in this codebase logs grouped attrs
func (b *slogBridge) WithGroup(string) slog.Handler { return b }

func bridgeLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func eventField(ev *zerolog.Event, a slog.Attr) {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		ev.Str(a.Key, a.Value.String())
	case slog.KindInt64:
		ev.Int64(a.Key, a.Value.Int64())
	case slog.KindFloat64:
		ev.Float64(a.Key, a.Value.Float64())
	case slog.KindBool:
		ev.Bool(a.Key, a.Value.Bool())
	case slog.KindDuration:
		ev.Dur(a.Key, a.Value.Duration())
	default:
		ev.Interface(a.Key, a.Value.Any())
	}
}

func contextField(w zerolog.Context, a slog.Attr) zerolog.Context {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		return w.Str(a.Key, a.Value.String())
	case slog.KindInt64:
		return w.Int64(a.Key, a.Value.Int64())
	case slog.KindFloat64:
		return w.Float64(a.Key, a.Value.Float64())
	case slog.KindBool:
		return w.Bool(a.Key, a.Value.Bool())
	default:
		return w.Interface(a.Key, a.Value.Any())
	}
}
