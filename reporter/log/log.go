// Package log reports metrics as a single logfmt line per flush, adapted
// from the teacher's reporter/log.go (Log function) and logreporter/reporter.go
// (buffered Reporter implementing the teacher's Reporter interface).
package log

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Logger follows the subset of the standard log.Logger API reporters need.
type Logger interface {
	Println(v ...interface{})
}

// Reporter buffers one logfmt fragment per Report call and emits them all
// as a single log line on Flush, grounded on logreporter/reporter.go.
type Reporter struct {
	logger Logger

	mu      sync.Mutex
	metrics []string
}

// New creates a Reporter that writes through logger. With a nil logger,
// lines are printed to standard output with fmt.Println.
func New(logger Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report appends "name|tag1,tag2:field=value,field=value,..." covering every
// field of summary except kind, sorted by field name, in the teacher's
// logfmt style.
func (r *Reporter) Report(name string, tags []string, summary map[string]interface{}) error {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		if k == "kind" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", k, summary[k]))
	}

	metric := fmt.Sprintf("%s|%s:%s", name, strings.Join(tags, ","), strings.Join(fields, ","))

	r.mu.Lock()
	r.metrics = append(r.metrics, metric)
	r.mu.Unlock()
	return nil
}

// Flush writes every fragment buffered since the last Flush as one line.
func (r *Reporter) Flush() error {
	r.mu.Lock()
	line := strings.Join(r.metrics, " ")
	r.metrics = r.metrics[:0]
	r.mu.Unlock()

	if line == "" {
		return nil
	}
	r.log(line)
	return nil
}

func (r *Reporter) log(v ...interface{}) {
	if r.logger != nil {
		r.logger.Println(v...)
		return
	}
	fmt.Println(v...)
}
