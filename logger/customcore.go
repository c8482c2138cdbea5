package logger

import (
	"go.uber.org/zap/zapcore"
)

// trailingFieldKeys are moved to the end of every entry so the event specific fields read first.
var trailingFieldKeys = map[string]bool{
	"request_id": true,
	"route":      true,
}

type customCore struct {
	zapcore.Core
}

// With adds structured context to the Core.
func (c *customCore) With(fields []zapcore.Field) zapcore.Core {
	return &customCore{c.Core.With(fields)}
}

// Write reorders the correlation fields to the end and writes the entry to the wrapped core.
func (c *customCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, reorderFields(fields))
}

// Check determines whether the supplied Entry should be logged.
// The check is registered against this core so Write goes through the reordering.
func (c *customCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *customCore) Sync() error {
	return c.Core.Sync()
}

func reorderFields(fields []zapcore.Field) []zapcore.Field {
	reordered := make([]zapcore.Field, 0, len(fields))
	var trailing []zapcore.Field
	for _, field := range fields {
		if trailingFieldKeys[field.Key] {
			trailing = append(trailing, field)
			continue
		}
		reordered = append(reordered, field)
	}
	return append(reordered, trailing...)
}
