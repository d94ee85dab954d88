package leaktest

import (
	"testing"
	"time"
)

type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper()                       {}
func (r *recordingTB) Errorf(string, ...interface{}) { r.failed = true }

func TestCheckNoGoroutineLeak_Clean(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() { close(done) }()
		<-done
	})
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	stop := make(chan struct{})
	defer close(stop)

	checker := NewGoroutineChecker(rec).WithTimeout(50 * time.Millisecond)
	go func() { <-stop }()
	checker.Check(0)

	if !rec.failed {
		t.Fatal("expected the leaked goroutine to be reported")
	}
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	stop := make(chan struct{})
	defer close(stop)

	checker := NewGoroutineChecker(rec).WithTimeout(20 * time.Millisecond)
	go func() { <-stop }()
	checker.Check(1)

	if rec.failed {
		t.Fatal("one goroutine is within tolerance")
	}
}
