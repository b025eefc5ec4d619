package leaderboard

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds every gateway call made by a Dispatcher.
const DefaultTimeout = 5 * time.Second

// resultBuffer is sized so in-flight calls rarely wait on the game loop.
const resultBuffer = 16

// Op identifies which gateway call produced a Result.
type Op int

const (
	OpSubmit Op = iota
	OpTopN
	OpRank
)

// String returns a human-readable name for the operation.
func (o Op) String() string {
	switch o {
	case OpSubmit:
		return "submit"
	case OpTopN:
		return "top"
	case OpRank:
		return "rank"
	default:
		return "unknown"
	}
}

// Result is the outcome of one asynchronous gateway call.
// RunID is set for submits and Gen for board fetches, so callers can drop
// results that belong to a run or panel they have moved past.
type Result struct {
	Op        Op
	RunID     string
	Gen       int
	Standings []Standing
	Rank      *Rank
	Err       error
}

// Dispatcher runs gateway calls off the game loop. Results are collected
// with Drain, which never blocks.
type Dispatcher struct {
	gw      Gateway
	timeout time.Duration
	results chan Result
	pending atomic.Int32
	wg      sync.WaitGroup
	log     *log.Logger
}

// NewDispatcher wraps gw. A nil gateway behaves like Offline.
func NewDispatcher(gw Gateway, timeout time.Duration, logger *log.Logger) *Dispatcher {
	if gw == nil {
		gw = Offline{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		gw:      gw,
		timeout: timeout,
		results: make(chan Result, resultBuffer),
		log:     logger,
	}
}

// SubmitRun hands a finished run to the gateway in the background.
func (d *Dispatcher) SubmitRun(s RunSummary) {
	tag := Result{Op: OpSubmit, RunID: s.ID.String()}
	d.goCall(tag, func(ctx context.Context) Result {
		err := d.gw.SubmitRun(ctx, s)
		if err != nil {
			d.log.Warn("submit run failed", "run", s.ID, "score", s.Score, "err", err)
		} else {
			d.log.Info("run submitted", "run", s.ID, "player", s.Player, "score", s.Score)
		}
		tag.Err = err
		return tag
	})
}

// FetchBoard requests the top n standings and the player's rank.
// Each arrives as its own Result stamped with gen.
func (d *Dispatcher) FetchBoard(n, gen int) {
	d.goCall(Result{Op: OpTopN, Gen: gen}, func(ctx context.Context) Result {
		standings, err := d.gw.TopN(ctx, n)
		if err != nil {
			d.log.Warn("fetch leaderboard failed", "gen", gen, "err", err)
		}
		return Result{Op: OpTopN, Gen: gen, Standings: standings, Err: err}
	})
	d.goCall(Result{Op: OpRank, Gen: gen}, func(ctx context.Context) Result {
		rank, err := d.gw.UserRank(ctx)
		if err != nil {
			d.log.Warn("fetch rank failed", "gen", gen, "err", err)
		}
		return Result{Op: OpRank, Gen: gen, Rank: rank, Err: err}
	})
}

// goCall runs call in the background. tag identifies the call and is
// what gets delivered, with ErrOffline, if call panics.
func (d *Dispatcher) goCall(tag Result, call func(ctx context.Context) Result) {
	d.pending.Add(1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		res := d.safeCall(ctx, tag, call)
		d.results <- res
	}()
}

// safeCall keeps a panicking gateway from taking the process down.
func (d *Dispatcher) safeCall(ctx context.Context, tag Result, call func(ctx context.Context) Result) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("leaderboard call panicked", "op", tag.Op, "panic", r)
			res = tag
			res.Err = ErrOffline
		}
	}()
	return call(ctx)
}

// Drain returns every result that has arrived since the last call.
func (d *Dispatcher) Drain() []Result {
	var out []Result
	for {
		select {
		case res := <-d.results:
			d.pending.Add(-1)
			out = append(out, res)
		default:
			return out
		}
	}
}

// Pending returns the number of calls whose results have not been drained.
func (d *Dispatcher) Pending() int {
	return int(d.pending.Load())
}

// Wait blocks until every started call has delivered its result.
// Results stay queued for Drain.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
