// Package buildinfo хранит сведения о сборке (версия, дата, коммит),
// которые передаются через -ldflags и пишутся в лог при старте.
package buildinfo

import (
	"fmt"

	"go.uber.org/zap"
)

// notAvailable подставляется вместо незаданных значений
const notAvailable = "N/A"

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// DefaultInfo возвращает информацию о сборке по умолчанию
func DefaultInfo() *Info {
	return NewInfo("", "", "")
}

// NewInfo создает Info; пустые значения заменяются на "N/A"
func NewInfo(version, date, commit string) *Info {
	return &Info{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// Fields возвращает сведения о сборке в виде полей zap
func (info *Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", info.Version),
		zap.String("date", info.Date),
		zap.String("commit", info.Commit),
	}
}

// Log пишет сведения о сборке в лог
func (info *Info) Log(logger *zap.Logger) {
	logger.Info("Build info", info.Fields()...)
}

// String возвращает строковое представление информации о сборке
func (info *Info) String() string {
	return fmt.Sprintf("Version: %s, Date: %s, Commit: %s", info.Version, info.Date, info.Commit)
}
