package loader

import (
	"log"
	"sort"
	"strconv"

	"mediaload/internal/metrics"
)

// Ledger accumulates per-code failure counts and logs each diagnostic as it
// happens. One instance is owned by the run and injected into the loader;
// it is not a process-wide singleton.
type Ledger struct {
	logger *log.Logger
	counts map[Code]int
}

func NewLedger(logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Default()
	}
	return &Ledger{
		logger: logger,
		counts: make(map[Code]int),
	}
}

// Fail records one failure: a log line in "entity (attribute): code message"
// form and a bumped count for the code.
func (l *Ledger) Fail(code Code, entity, attribute, message string) {
	if entity == "" {
		entity = "unknown"
	}
	l.logger.Printf("%s (%s): %d %s", entity, attribute, code, message)
	l.counts[code]++

	metrics.Count("load.failures.total", 1, "code:"+strconv.Itoa(int(code)))
}

// Count returns the count recorded for one code.
func (l *Ledger) Count(code Code) int { return l.counts[code] }

// Counts returns a copy of the code→count map.
func (l *Ledger) Counts() map[Code]int {
	out := make(map[Code]int, len(l.counts))
	for c, n := range l.counts {
		out[c] = n
	}
	return out
}

// Total returns the number of failures across all codes.
func (l *Ledger) Total() int {
	n := 0
	for _, c := range l.counts {
		n += c
	}
	return n
}

// LogSummary writes the end-of-run code→count report, lowest code first.
func (l *Ledger) LogSummary() {
	codes := make([]Code, 0, len(l.counts))
	for c := range l.counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	for _, c := range codes {
		l.logger.Printf("Error %d: %d", c, l.counts[c])
	}
}
