package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
)

// ErrWorkersClosed is returned when work is submitted after Close.
var ErrWorkersClosed = errors.New("guild workers are closed")

var errTaskPanicked = errors.New("guild task panicked")

type guildTask func(ctx context.Context)

// guildLane is the FIFO backlog of one guild.
// A goroutine drains it and exits once it is empty.
type guildLane struct {
	tasks []guildTask
}

// GuildWorkers runs work on one serial lane per guild.
// Tasks for one guild run in submission order; different guilds run in parallel.
type GuildWorkers struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	lanes  map[snowflake.ID]*guildLane
	closed bool
	wg     sync.WaitGroup
}

// NewGuildWorkers creates a new GuildWorkers.
func NewGuildWorkers() *GuildWorkers {
	ctx, cancel := context.WithCancel(context.Background())
	return &GuildWorkers{
		ctx:    ctx,
		cancel: cancel,
		lanes:  make(map[snowflake.ID]*guildLane),
	}
}

// Do runs fn on the guild's lane and waits for it to return.
// If ctx is done before fn starts, fn is skipped and ctx's error returned.
func (w *GuildWorkers) Do(
	ctx context.Context,
	guildID snowflake.ID,
	fn func(ctx context.Context) error,
) error {
	done := make(chan error, 1)

	err := w.submit(guildID, func(context.Context) {
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}

		returned := false
		defer func() {
			if !returned {
				done <- errTaskPanicked
			}
		}()

		err := fn(ctx)
		returned = true
		done <- err
	})
	if err != nil {
		return err
	}

	return <-done
}

// Go enqueues fn on the guild's lane without waiting.
func (w *GuildWorkers) Go(guildID snowflake.ID, fn func(ctx context.Context)) {
	if err := w.submit(guildID, fn); err != nil {
		slog.Debug("dropped guild task", "guild", guildID, "error", err)
	}
}

// Active returns the number of guilds with a running lane.
func (w *GuildWorkers) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.lanes)
}

// Close rejects new work, cancels the lane context and waits for running lanes.
func (w *GuildWorkers) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}

func (w *GuildWorkers) submit(guildID snowflake.ID, task guildTask) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWorkersClosed
	}

	if lane, ok := w.lanes[guildID]; ok {
		lane.tasks = append(lane.tasks, task)
		return nil
	}

	lane := &guildLane{tasks: []guildTask{task}}
	w.lanes[guildID] = lane

	w.wg.Add(1)
	go w.drain(guildID, lane)
	return nil
}

func (w *GuildWorkers) drain(guildID snowflake.ID, lane *guildLane) {
	defer w.wg.Done()

	for {
		w.mu.Lock()
		if len(lane.tasks) == 0 {
			delete(w.lanes, guildID)
			w.mu.Unlock()
			return
		}
		task := lane.tasks[0]
		lane.tasks[0] = nil
		lane.tasks = lane.tasks[1:]
		w.mu.Unlock()

		w.run(guildID, task)
	}
}

func (w *GuildWorkers) run(guildID snowflake.ID, task guildTask) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("guild task panicked", "guild", guildID, "error", fmt.Sprint(r))
		}
	}()

	task(w.ctx)
}

var _ ports.GuildExecutor = (*GuildWorkers)(nil)
