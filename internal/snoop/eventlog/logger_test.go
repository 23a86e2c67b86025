// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventlog

//go:generate mockgen -destination mock_eventlog_test.go -package $GOPACKAGE -write_package_comment=false github.com/kolkov/snoop/internal/snoop/eventlog Generator,Flusher

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kolkov/snoop/internal/snoop/faults"
	"github.com/kolkov/snoop/internal/snoop/gate"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// countingRecorder is a telemetry.Recorder that counts calls.
type countingRecorder struct {
	mu        sync.Mutex
	delivered map[event.Category]int
	faults    map[string]int
	flushes   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		delivered: make(map[event.Category]int),
		faults:    make(map[string]int),
	}
}

func (r *countingRecorder) Delivered(c event.Category) {
	r.mu.Lock()
	r.delivered[c]++
	r.mu.Unlock()
}

func (r *countingRecorder) Fault(stage string) {
	r.mu.Lock()
	r.faults[stage]++
	r.mu.Unlock()
}

func (r *countingRecorder) Registration(bool) {}

func (r *countingRecorder) Swept(int, int) {}

func (r *countingRecorder) Flushed(time.Duration, error) {
	r.mu.Lock()
	r.flushes++
	r.mu.Unlock()
}

// flushingGenerator is a Generator that also implements Flusher.
type flushingGenerator struct {
	*MockGenerator
	*MockFlusher
}

type fixture struct {
	callbacks *Registry
	depot     *faults.Depot
	metrics   *countingRecorder
	logs      *bytes.Buffer
	logger    *Logger
	state     *gate.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		callbacks: &Registry{},
		depot:     &faults.Depot{},
		metrics:   newCountingRecorder(),
		logs:      &bytes.Buffer{},
	}
	f.logger = New(Config{
		Callbacks: f.callbacks,
		Faults:    f.depot,
		Metrics:   f.metrics,
		Logger: slog.New(slog.NewJSONHandler(f.logs, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
	})

	tbl := gate.New(gate.Config{})
	f.state = tbl.Current()
	t.Cleanup(func() { tbl.Forget(f.state.GoroutineID()) })
	return f
}

func (f *fixture) logCount(msg string) int {
	return strings.Count(f.logs.String(), `"msg":"`+msg+`"`)
}

func insn(op event.Opcode, iid int32) event.TraceEvent {
	return &event.Insn{Loc: event.Loc{Op: op, IID: iid, MID: 1}}
}

var warmUp = &event.Special{
	Loc:  event.Loc{Op: event.SPECIAL, IID: event.NoID, MID: event.NoID},
	Code: event.SpecialWarmUp,
}

func TestLog_DeliversInOrder(t *testing.T) {
	f := newFixture(t)

	var got []event.TraceEvent
	var gotThread *thread.Thread
	f.callbacks.Set(GeneratorFunc(func(th *thread.Thread) Consumer {
		gotThread = th
		return func(ev event.TraceEvent) { got = append(got, ev) }
	}))

	evs := []event.TraceEvent{insn(event.IADD, 1), insn(event.ISUB, 2), insn(event.IRETURN, 3)}
	for _, ev := range evs {
		require.NoError(t, f.logger.Log(f.state, ev))
	}

	assert.Equal(t, evs, got)
	assert.Same(t, thread.Current(), gotThread)
	assert.Equal(t, 2, f.metrics.delivered[event.CategoryArith])
	assert.Equal(t, 1, f.metrics.delivered[event.CategoryReturn])
}

// TestLog_WarmUp tests that the warm-up event resolves the consumer once
// and is never delivered.
func TestLog_WarmUp(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	var got []event.TraceEvent
	gen := NewMockGenerator(ctrl)
	gen.EXPECT().Callback(gomock.Any()).
		Return(Consumer(func(ev event.TraceEvent) { got = append(got, ev) })).
		Times(1)
	f.callbacks.Set(gen)

	require.NoError(t, f.logger.Log(f.state, warmUp))
	assert.Empty(t, got)

	require.NoError(t, f.logger.Log(f.state, insn(event.NOP, 0)))
	require.Len(t, got, 1)
	assert.Equal(t, event.NOP, got[0].Location().Op)
}

// TestLog_GenerationChange tests that a new generator is picked up on the
// next event.
func TestLog_GenerationChange(t *testing.T) {
	f := newFixture(t)

	var first, second int
	f.callbacks.Set(GeneratorFunc(func(*thread.Thread) Consumer {
		return func(event.TraceEvent) { first++ }
	}))
	require.NoError(t, f.logger.Log(f.state, insn(event.NOP, 0)))

	f.callbacks.Set(GeneratorFunc(func(*thread.Thread) Consumer {
		return func(event.TraceEvent) { second++ }
	}))
	require.NoError(t, f.logger.Log(f.state, insn(event.NOP, 1)))
	require.NoError(t, f.logger.Log(f.state, insn(event.NOP, 2)))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestLog_NoGenerator(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.logger.Log(f.state, insn(event.NOP, 0)))

	f.callbacks.Set(nil)
	assert.NoError(t, f.logger.Log(f.state, insn(event.NOP, 0)))

	unique, _ := f.depot.Stats()
	assert.Zero(t, unique)
}

// TestLog_NilConsumer tests that a generator returning nil is reported once
// and not asked again for the same generation.
func TestLog_NilConsumer(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	gen := NewMockGenerator(ctrl)
	gen.EXPECT().Callback(gomock.Any()).Return(nil).Times(1)
	f.callbacks.Set(gen)

	assert.ErrorIs(t, f.logger.Log(f.state, warmUp), ErrNilConsumer)
	assert.ErrorIs(t, f.logger.Log(f.state, insn(event.NOP, 0)), ErrNilConsumer)

	recs := f.depot.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, faults.StageResolve, recs[0].Stage)
	assert.Equal(t, 1, f.metrics.faults[faults.StageResolve])
	assert.Equal(t, 1, f.logCount("trace fault suppressed"))
}

func TestLog_GeneratorPanic(t *testing.T) {
	f := newFixture(t)
	f.callbacks.Set(GeneratorFunc(func(*thread.Thread) Consumer {
		panic("generator broken")
	}))

	var err error
	assert.NotPanics(t, func() { err = f.logger.Log(f.state, insn(event.NOP, 0)) })
	assert.ErrorIs(t, err, ErrGeneratorPanic)
	assert.Contains(t, err.Error(), "generator broken")
	assert.Equal(t, 1, f.metrics.faults[faults.StageResolve])
}

// TestLog_ConsumerPanic tests that a panicking consumer is contained,
// reported at Error once and at Debug afterwards, and does not stop later
// deliveries.
func TestLog_ConsumerPanic(t *testing.T) {
	f := newFixture(t)

	calls := 0
	f.callbacks.Set(GeneratorFunc(func(*thread.Thread) Consumer {
		return func(ev event.TraceEvent) {
			calls++
			if ev.Location().Op == event.ATHROW {
				panic("consumer broken")
			}
		}
	}))

	for i := 0; i < 3; i++ {
		var err error
		assert.NotPanics(t, func() { err = f.logger.Log(f.state, insn(event.ATHROW, 7)) })
		assert.ErrorIs(t, err, ErrConsumerPanic)
	}
	require.NoError(t, f.logger.Log(f.state, insn(event.NOP, 8)))

	assert.Equal(t, 4, calls)
	assert.Equal(t, 3, f.metrics.faults[faults.StageDeliver])
	assert.Equal(t, 1, f.metrics.delivered[event.CategoryNop])
	assert.Zero(t, f.metrics.delivered[event.CategoryThrow])

	recs := f.depot.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(3), recs[0].Count())
	assert.Equal(t, "consumer broken", recs[0].Message)

	assert.Equal(t, 1, f.logCount("trace fault suppressed"))
	assert.Equal(t, 2, f.logCount("trace fault repeated"))
	assert.Contains(t, f.logs.String(), `"event":"ATHROW@7/1"`)
}

func TestReport(t *testing.T) {
	f := newFixture(t)
	f.logger.Report(faults.StageValidate, errors.New("IADD is not a Jump"), f.state, insn(event.IADD, 4))

	assert.Equal(t, 1, f.metrics.faults[faults.StageValidate])
	assert.Contains(t, f.logs.String(), "IADD is not a Jump")
	assert.Same(t, f.depot, f.logger.Faults())
}

func TestFlush(t *testing.T) {
	t.Run("not a flusher", func(t *testing.T) {
		f := newFixture(t)
		f.callbacks.Set(GeneratorFunc(func(*thread.Thread) Consumer { return nil }))
		assert.NoError(t, f.logger.Flush())
		assert.Zero(t, f.metrics.flushes)
	})

	t.Run("flushes once", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		flusher := NewMockFlusher(ctrl)
		flusher.EXPECT().Flush().Return(nil).Times(1)
		f.callbacks.Set(flushingGenerator{NewMockGenerator(ctrl), flusher})

		assert.NoError(t, f.logger.Flush())
		assert.Equal(t, 1, f.metrics.flushes)
	})

	t.Run("error", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		flusher := NewMockFlusher(ctrl)
		flusher.EXPECT().Flush().Return(errors.New("disk full"))
		f.callbacks.Set(flushingGenerator{NewMockGenerator(ctrl), flusher})

		err := f.logger.Flush()
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("panic", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		flusher := NewMockFlusher(ctrl)
		flusher.EXPECT().Flush().Do(func() { panic("flush broken") })
		f.callbacks.Set(flushingGenerator{NewMockGenerator(ctrl), flusher})

		err := f.logger.Flush()
		assert.ErrorIs(t, err, ErrFlushPanic)
		assert.Equal(t, 1, f.metrics.faults[faults.StageFlush])
		assert.Equal(t, 1, f.metrics.flushes)
	})
}

func TestRegistry(t *testing.T) {
	var r Registry
	g, generation := r.Load()
	assert.Equal(t, noopGenerator{}, g)
	assert.Zero(t, generation)

	custom := GeneratorFunc(func(*thread.Thread) Consumer { return nil })
	r.Set(custom)
	_, g1 := r.Load()
	r.Set(nil)
	g, g2 := r.Load()
	assert.Greater(t, g2, g1)
	assert.Equal(t, noopGenerator{}, g)
	assert.NotNil(t, g.Callback(nil))
}

func TestNew_Defaults(t *testing.T) {
	l := New(Config{})
	assert.NotNil(t, l.Faults())

	tbl := gate.New(gate.Config{})
	s := tbl.Current()
	defer tbl.Forget(s.GoroutineID())
	assert.NoError(t, l.Log(s, insn(event.NOP, 0)))
}
