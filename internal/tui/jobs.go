package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/lockdam/internal/logger"
)

type jobKind string

type jobStatus string

const (
	jobKindExcerpt jobKind = "excerpt"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	log     *logger.Logger
	running map[jobKind]int
}

func newJobBus(log *logger.Logger) *jobBus {
	return &jobBus{log: log, running: map[jobKind]int{}}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start runs runner in the background. The bus first emits a running signal,
// then the runner's payload wrapped in a result envelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	log := b.log
	runCmd := func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.WithFields(map[string]any{
			"job":      id,
			"status":   string(snapshot.Status),
			"duration": snapshot.Duration.String(),
		}).Debug("job finished")
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

// Track records a signal so the footer can show how many jobs are in flight.
func (b *jobBus) Track(snapshot jobSnapshot) {
	switch snapshot.Status {
	case jobStatusRunning:
		b.running[snapshot.Kind]++
	default:
		if b.running[snapshot.Kind] > 0 {
			b.running[snapshot.Kind]--
		}
	}
}

// Running reports the number of unfinished jobs of kind.
func (b *jobBus) Running(kind jobKind) int {
	return b.running[kind]
}
