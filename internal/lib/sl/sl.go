// Package sl содержит мелкие помощники для структурированного логирования
// через slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут лога с ключом "error".
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
