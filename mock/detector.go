package mock

import "github.com/fwojciec/novelsrc"

var _ novelsrc.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of novelsrc.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) novelsrc.SiteFramework
}

func (d *FrameworkDetector) Detect(html string) novelsrc.SiteFramework {
	return d.DetectFn(html)
}
