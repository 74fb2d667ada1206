package storage

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestRecorder(t *testing.T, store recordStore) *Recorder {
	t.Helper()
	rec := newRecorder(store, "airplane", log.New(io.Discard))
	t.Cleanup(rec.Close)
	return rec
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	rec := newTestRecorder(t, store)

	high, longest := rec.Records()
	if high != 0 || longest != 0 {
		t.Errorf("Expected empty records, got %d/%v", high, longest)
	}

	rec.PersistHighScore(150)
	rec.PersistLongestPlayTime(33)
	rec.PersistHighScore(90)

	high, longest = rec.Records()
	if high != 150 || longest != 33 {
		t.Errorf("Records() = %d/%v, want 150/33", high, longest)
	}
}

func TestRecorderSaveRound(t *testing.T) {
	store := openTestStore(t)
	rec := newTestRecorder(t, store)

	rec.SaveRound(70, 8)
	rec.SaveRound(20, 3)
	rec.Flush()

	scores, err := store.TopScores("airplane", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 70 || scores[0].PlaySecs != 8 {
		t.Errorf("scores = %+v, want 70/8 then 20/3", scores)
	}
}

func TestRecorderCloseDrainsQueue(t *testing.T) {
	store := openTestStore(t)
	rec := newRecorder(store, "airplane", log.New(io.Discard))

	rec.PersistHighScore(40)
	rec.SaveRound(40, 2)
	rec.Close()
	rec.Close()

	got, err := store.Records("airplane")
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	if got.HighScore != 40 {
		t.Errorf("high score after Close = %d, want 40", got.HighScore)
	}

	// Writes after Close are dropped, not run or blocked on.
	rec.PersistHighScore(99)
	rec.Flush()
	if got, _ := store.Records("airplane"); got.HighScore != 40 {
		t.Errorf("write after Close reached the store: %+v", got)
	}
}

func TestRecorderSwallowsErrors(t *testing.T) {
	store := openTestStore(t)
	rec := newTestRecorder(t, store)
	store.Close()

	// Must not panic on a closed store.
	rec.PersistHighScore(10)
	rec.PersistLongestPlayTime(1)
	rec.SaveRound(10, 1)
	if high, _ := rec.Records(); high != 0 {
		t.Errorf("Expected zero from failing store, got %d", high)
	}
}

// slowStore blocks every write until release is closed.
type slowStore struct {
	release chan struct{}

	mu     sync.Mutex
	high   int
	rounds int
}

func (s *slowStore) Records(string) (Records, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Records{HighScore: s.high}, nil
}

func (s *slowStore) PersistHighScore(_ string, value int) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	if value > s.high {
		s.high = value
	}
	return nil
}

func (s *slowStore) PersistLongestPlayTime(string, float64) error {
	<-s.release
	return nil
}

func (s *slowStore) SaveScore(string, int, float64) (int64, error) {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds++
	return int64(s.rounds), nil
}

func TestRecorderDoesNotBlockOnSlowStore(t *testing.T) {
	store := &slowStore{release: make(chan struct{})}
	rec := newTestRecorder(t, store)

	start := time.Now()
	// More writes than the queue holds: the overflow is dropped.
	for i := 0; i < recorderQueueSize*2; i++ {
		rec.PersistHighScore(i + 1)
		rec.SaveRound(i+1, 1)
	}
	if d := time.Since(start); d > time.Second {
		t.Fatalf("writes blocked the caller for %v", d)
	}

	close(store.release)
	if high, _ := rec.Records(); high == 0 {
		t.Error("no queued write reached the store")
	}
}

func TestRecorderCloseOn(t *testing.T) {
	store := openTestStore(t)
	rec := newTestRecorder(t, store)
	ended := make(chan struct{})
	rec.CloseOn(ended)

	rec.PersistHighScore(12)
	close(ended)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder still open after the session ended")
	}
	rec.Flush()
	if got, _ := store.Records("airplane"); got.HighScore != 12 {
		t.Errorf("high score = %d, want 12", got.HighScore)
	}
}
