package component

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ErrorBoundary receives errors reported by hooks of component c.
type ErrorBoundary func(c *Component, err error)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	logger   logrus.FieldLogger
	boundary ErrorBoundary
}

// WithLogger sets the logger used for lifecycle tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithErrorBoundary installs the handler for errors reported through
// Component.ReportError. Without one, reported errors panic.
func WithErrorBoundary(fn ErrorBoundary) Option {
	return func(c *config) {
		c.boundary = fn
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
