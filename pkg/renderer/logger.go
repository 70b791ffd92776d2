package renderer

import (
	"log"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of the standard log package
type DefaultLogger struct {
	logger *log.Logger
}

// Printf implements core.Logger
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a logger writing through log.Default()
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.Default()}
}
