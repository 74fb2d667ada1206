package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/PabloKostenko/airplane/internal/core"
)

// recorderQueueSize bounds pending writes; extra writes are dropped.
const recorderQueueSize = 16

// recordStore is the part of Store the recorder writes through.
type recordStore interface {
	Records(gameID string) (Records, error)
	PersistHighScore(gameID string, value int) error
	PersistLongestPlayTime(gameID string, secs float64) error
	SaveScore(gameID string, score int, playSecs float64) (int64, error)
}

// Recorder binds a Store to one game and satisfies core.Recorder.
// Writes run on a worker goroutine in submission order, so callers on the
// game loop never wait for SQLite. Failures are logged and swallowed.
type Recorder struct {
	store  recordStore
	gameID string
	logger *log.Logger

	jobs chan func()
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

var _ core.Recorder = (*Recorder)(nil)

// NewRecorder starts a recorder for gameID. A nil logger uses the default.
// Close it to flush pending writes.
func NewRecorder(store *Store, gameID string, logger *log.Logger) *Recorder {
	return newRecorder(store, gameID, logger)
}

func newRecorder(store recordStore, gameID string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recorder{
		store:  store,
		gameID: gameID,
		logger: logger,
		jobs:   make(chan func(), recorderQueueSize),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for {
		select {
		case job := <-r.jobs:
			job()
		case <-r.done:
			// Drain what was queued before Close.
			for {
				select {
				case job := <-r.jobs:
					job()
				default:
					return
				}
			}
		}
	}
}

// submit queues job without blocking. Returns false if it was dropped.
func (r *Recorder) submit(what string, job func()) bool {
	select {
	case <-r.done:
		r.logger.Warn("recorder closed, write dropped", "game", r.gameID, "write", what)
		return false
	default:
	}
	select {
	case r.jobs <- job:
		return true
	default:
		r.logger.Warn("recorder busy, write dropped", "game", r.gameID, "write", what)
		return false
	}
}

// Records returns the stored high score and longest play time. It waits
// for queued writes first so the values include them.
func (r *Recorder) Records() (int, float64) {
	r.Flush()
	rec, err := r.store.Records(r.gameID)
	if err != nil {
		r.logger.Warn("could not load records", "game", r.gameID, "error", err)
		return 0, 0
	}
	return rec.HighScore, rec.LongestPlaySecs
}

// PersistHighScore queues a new high score.
func (r *Recorder) PersistHighScore(value int) {
	r.submit("high score", func() {
		if err := r.store.PersistHighScore(r.gameID, value); err != nil {
			r.logger.Error("could not persist high score", "game", r.gameID, "value", value, "error", err)
			return
		}
		r.logger.Debug("high score persisted", "game", r.gameID, "value", value)
	})
}

// PersistLongestPlayTime queues a new longest play time.
func (r *Recorder) PersistLongestPlayTime(secs float64) {
	r.submit("longest play time", func() {
		if err := r.store.PersistLongestPlayTime(r.gameID, secs); err != nil {
			r.logger.Error("could not persist longest play time", "game", r.gameID, "secs", secs, "error", err)
			return
		}
		r.logger.Debug("longest play time persisted", "game", r.gameID, "secs", secs)
	})
}

// SaveRound queues a finished round for the score history.
func (r *Recorder) SaveRound(score int, playSecs float64) {
	r.submit("round", func() {
		if _, err := r.store.SaveScore(r.gameID, score, playSecs); err != nil {
			r.logger.Error("could not save score", "game", r.gameID, "score", score, "error", err)
		}
	})
}

// Flush waits until every write queued so far has run.
func (r *Recorder) Flush() {
	barrier := make(chan struct{})
	select {
	case r.jobs <- func() { close(barrier) }:
	case <-r.done:
		r.wg.Wait()
		return
	}
	select {
	case <-barrier:
	case <-r.done:
		r.wg.Wait()
	}
}

// CloseOn closes the recorder when ended is closed, unless Close came
// first.
func (r *Recorder) CloseOn(ended <-chan struct{}) {
	go func() {
		select {
		case <-ended:
			r.Close()
		case <-r.done:
		}
	}()
}

// Close runs the pending writes and stops the worker. Safe to call twice.
func (r *Recorder) Close() {
	r.once.Do(func() { close(r.done) })
	r.wg.Wait()
}
