// Package audio plays gameplay cues on a terminal.
// Terminals have no mixer, so cues are rendered as BEL sequences written by
// a background worker; callers never block on the writer.
package audio

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/settings"
)

// Cue is a sound effect.
type Cue int

const (
	CueHit Cue = iota
	CueCollect
)

// String returns the cue's asset-style name.
func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueCollect:
		return "collect"
	default:
		return "unknown"
	}
}

// sequence is what each cue writes to the terminal.
func (c Cue) sequence() string {
	switch c {
	case CueHit:
		return "\a\a"
	case CueCollect:
		return "\a"
	default:
		return ""
	}
}

// queueSize bounds pending cues; extra cues are dropped.
const queueSize = 8

// Bell is a fire-and-forget cue player.
type Bell struct {
	out      io.Writer
	settings settings.Reader
	logger   *log.Logger

	cues  chan Cue
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
	music atomic.Bool
}

// NewBell starts a bell writing to out. settings may be nil, which
// enables everything.
func NewBell(out io.Writer, s settings.Reader, logger *log.Logger) *Bell {
	if logger == nil {
		logger = log.Default()
	}
	b := &Bell{
		out:      out,
		settings: s,
		logger:   logger,
		cues:     make(chan Cue, queueSize),
		done:     make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

func (b *Bell) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return
		case c := <-b.cues:
			if _, err := io.WriteString(b.out, c.sequence()); err != nil {
				b.logger.Debug("cue write failed", "cue", c, "error", err)
			}
		}
	}
}

func (b *Bell) enabled(name string) bool {
	if b.settings == nil {
		return true
	}
	return b.settings.Enabled(name)
}

// Play queues a cue if sound is enabled. Never blocks.
func (b *Bell) Play(c Cue) {
	if !b.enabled(settings.Sound) {
		return
	}
	select {
	case <-b.done:
	case b.cues <- c:
	default:
		b.logger.Debug("cue dropped", "cue", c)
	}
}

// PlayEvent maps a game event to its cue.
func (b *Bell) PlayEvent(e core.Event) {
	switch e {
	case core.EventHit:
		b.Play(CueHit)
	case core.EventCollect:
		b.Play(CueCollect)
	}
}

// StartMusic starts background music if music is enabled.
func (b *Bell) StartMusic() {
	if !b.enabled(settings.Music) {
		b.music.Store(false)
		return
	}
	if !b.music.Swap(true) {
		b.logger.Debug("music started")
	}
}

// StopMusic stops background music.
func (b *Bell) StopMusic() {
	if b.music.Swap(false) {
		b.logger.Debug("music stopped")
	}
}

// MusicPlaying reports whether background music is on.
func (b *Bell) MusicPlaying() bool {
	return b.music.Load()
}

// Close stops the worker. Pending cues are discarded.
func (b *Bell) Close() {
	b.once.Do(func() {
		close(b.done)
		b.music.Store(false)
	})
	b.wg.Wait()
}
