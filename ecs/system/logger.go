package system

import "github.com/charmbracelet/log"

func loggerOrDefault(l *log.Logger, system string) *log.Logger {
	if l == nil {
		l = log.Default()
	}
	return l.WithPrefix(system)
}
