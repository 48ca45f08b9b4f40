package metrics

import (
	"reflect"
	"runtime"
	"sync"
	"testing"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter(TasksDispatched)
	c2 := p.Counter(TasksDispatched)

	if reflect.ValueOf(c1).Pointer() != reflect.ValueOf(c2).Pointer() {
		t.Fatalf("expected same counter instance for same name")
	}

	c1.Add(3)
	c2.Add(2)
	if got := p.CounterValue(TasksDispatched); got != 5 {
		t.Fatalf("counter value = %d; want 5", got)
	}

	if got := p.CounterValue(TasksCompleted); got != 0 {
		t.Fatalf("unknown counter value = %d; want 0", got)
	}
}

func TestBasicProvider_UpDownCounter_Moves(t *testing.T) {
	p := NewBasicProvider()
	u := p.UpDownCounter(WorkersBusy)

	u.Add(+3)
	u.Add(-1)
	u.Add(+10)
	if got := p.UpDownValue(WorkersBusy); got != 12 {
		t.Fatalf("updown value = %d; want 12", got)
	}
}

func TestBasicProvider_Histogram_RecordsStats(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram(TaskDuration, WithUnit("seconds"), WithDescription("compute time"))

	h.Record(0.1)
	h.Record(0.3)
	h.Record(0.2)
	s := p.HistogramSnapshot(TaskDuration)
	if s.Count != 3 {
		t.Fatalf("count = %d; want 3", s.Count)
	}
	if s.Min != 0.1 || s.Max != 0.3 {
		t.Fatalf("min/max = (%v,%v); want (0.1,0.3)", s.Min, s.Max)
	}
	if s.Mean < 0.19 || s.Mean > 0.21 {
		t.Fatalf("mean = %v; want ~0.2", s.Mean)
	}

	meta, ok := p.Describe(TaskDuration)
	if !ok || meta.Unit != "seconds" || meta.Description != "compute time" {
		t.Fatalf("metadata = %+v (ok=%v); want unit seconds", meta, ok)
	}
}

func TestBasicProvider_Histogram_EmptySnapshot(t *testing.T) {
	p := NewBasicProvider()
	if s := p.HistogramSnapshot(TaskDuration); s != (HistSnapshot{}) {
		t.Fatalf("snapshot of unknown histogram = %+v; want zero", s)
	}
}

func TestBasicProvider_Concurrent_GetSameInstrument(t *testing.T) {
	p := NewBasicProvider()
	n := 50
	ptrs := make([]uintptr, n)
	wg := sync.WaitGroup{}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			ptrs[idx] = reflect.ValueOf(p.Counter("shared")).Pointer()
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("expected same pointer for all retrieved counters; mismatch at %d", i)
		}
	}
}

func TestBasicProvider_Concurrent_Record(t *testing.T) {
	p := NewBasicProvider()
	c := p.Counter(TasksCompleted)
	h := p.Histogram(TaskDuration)

	workers := runtime.NumCPU() * 2
	iters := 500
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				c.Add(1)
				h.Record(float64((base%10)+i%10) / 100.0)
			}
		}(w)
	}
	wg.Wait()

	expected := int64(workers * iters)
	if got := p.CounterValue(TasksCompleted); got != expected {
		t.Fatalf("counter = %d; want %d", got, expected)
	}
	s := p.HistogramSnapshot(TaskDuration)
	if s.Count != expected {
		t.Fatalf("hist count = %d; want %d", s.Count, expected)
	}
	if s.Min < 0.0 || s.Min > 0.09 || s.Max < 0.0 || s.Max > 0.19 {
		t.Fatalf("min/max out of expected range: (%v,%v)", s.Min, s.Max)
	}
}

func TestNoopProvider_Discards(t *testing.T) {
	var p Provider = NewNoopProvider()
	p.Counter(TasksDispatched).Add(1)
	p.UpDownCounter(WorkersBusy).Add(-1)
	p.Histogram(TaskDuration).Record(1.5)
}
