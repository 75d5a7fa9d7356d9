package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Ensure LoggingDetector implements novelsrc.FrameworkDetector.
var _ novelsrc.FrameworkDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a FrameworkDetector with debug logging.
type LoggingDetector struct {
	next   novelsrc.FrameworkDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next novelsrc.FrameworkDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingDetector) Detect(html string) novelsrc.SiteFramework {
	begin := time.Now()
	framework := d.next.Detect(html)
	d.logger.Info("framework detection",
		"framework", string(framework),
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return framework
}
