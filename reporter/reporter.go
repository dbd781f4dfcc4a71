// Package reporter describes the external collaborator contract through
// which a metrics.Registry's contents are periodically shipped elsewhere,
// grounded on the teacher's reporter.go Reporter interface, generalized
// from the teacher's Discrete/Sample split to the registry's single
// {name: summary} shape.
package reporter

import (
	"time"

	metrics "github.com/heroku/appmetrics"
)

// Reporter is implemented by every reporting backend (log, datadog, ...).
// Report is called once per instrument selected for reporting, Flush once
// per reporting cycle, after every Report call for that cycle has returned.
type Reporter interface {
	Report(name string, tags []string, summary map[string]interface{}) error
	Flush() error
}

// Run polls reg every interval for every instrument tagged tag, reporting
// each one through r and then flushing, until stop is closed. Errors are
// logged through logger rather than aborting the loop, grounded on the
// teacher's registry.go background flush loop.
func Run(r Reporter, reg *metrics.Registry, tag string, interval time.Duration, logger metrics.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			runOnce(r, reg, tag, logger)
		}
	}
}

func runOnce(r Reporter, reg *metrics.Registry, tag string, logger metrics.Logger) {
	for name, summary := range reg.ByTag(tag) {
		if err := r.Report(name, []string{tag}, summary); err != nil && logger != nil {
			logger.Printf("reporter: report %s failed: %v", name, err)
		}
	}
	if err := r.Flush(); err != nil && logger != nil {
		logger.Printf("reporter: flush failed: %v", err)
	}
}
