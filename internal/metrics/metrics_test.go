package metrics

import (
	"reflect"
	"testing"
)

type recorded struct {
	name  string
	delta float64
	tags  []string
}

type recordingBackend struct {
	calls   []recorded
	flushes int
}

func (r *recordingBackend) Count(name string, delta float64, tags []string) {
	r.calls = append(r.calls, recorded{name, delta, tags})
}

func (r *recordingBackend) Flush() error {
	r.flushes++
	return nil
}

// The backend slot is process-global, so these tests do not run in parallel
// and restore the nop default when done.
func TestCountGoesToInstalledBackend(t *testing.T) {
	rec := &recordingBackend{}
	SetBackend(rec)
	defer SetBackend(nil)

	Count("load.records.total", 1, "kind:cd")
	Count("load.failures.total", 2)

	want := []recorded{
		{"load.records.total", 1, []string{"kind:cd"}},
		{"load.failures.total", 2, nil},
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls: got %+v, want %+v", rec.calls, want)
	}

	if err := Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if rec.flushes != 1 {
		t.Errorf("flushes: %d, want 1", rec.flushes)
	}
}

func TestNilBackendFallsBackToNop(t *testing.T) {
	SetBackend(nil)

	// Must not panic, must not error.
	Count("x", 1)
	if err := Flush(); err != nil {
		t.Fatalf("flush on nop: %v", err)
	}
}
