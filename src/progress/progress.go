// Package progress defines the tick/step progress protocol used while plots
// are built, with implementations that ignore, count or log the updates.
package progress

import (
	"sync"

	"github.com/mczhu/spykeutils/src/logging"
)

// Indicator receives progress of a long-running operation. SetTicks announces
// the expected number of steps, Step advances by n and Done ends the
// operation. Implementations must tolerate Done being called more than once.
type Indicator interface {
	Begin(title string)
	SetTicks(ticks int)
	Step(n int)
	SetStatus(status string)
	Done()
}

// None discards all progress.
type None struct{}

func (None) Begin(string)     {}
func (None) SetTicks(int)     {}
func (None) Step(int)         {}
func (None) SetStatus(string) {}
func (None) Done()            {}

// Counter records progress; it is safe for concurrent use.
type Counter struct {
	mu     sync.Mutex
	title  string
	ticks  int
	steps  int
	status string
	done   int
}

func (c *Counter) Begin(title string) {
	c.mu.Lock()
	c.title = title
	c.mu.Unlock()
}

func (c *Counter) SetTicks(ticks int) {
	c.mu.Lock()
	c.ticks = ticks
	c.steps = 0
	c.mu.Unlock()
}

func (c *Counter) Step(n int) {
	c.mu.Lock()
	c.steps += n
	c.mu.Unlock()
}

func (c *Counter) SetStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Counter) Done() {
	c.mu.Lock()
	c.done++
	c.mu.Unlock()
}

// Snapshot returns the announced ticks, the steps taken and how often Done
// was called.
func (c *Counter) Snapshot() (ticks, steps, done int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks, c.steps, c.done
}

// Status returns the title and last status text.
func (c *Counter) Status() (title, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title, c.status
}

// Log reports progress through the debug logger, at most once per Every
// percent.
type Log struct {
	Every int

	title string
	ticks int
	steps int
	last  int
}

func (l *Log) Begin(title string) {
	l.title = title
	logging.Debugf("[progress] %s", title)
}

func (l *Log) SetTicks(ticks int) {
	l.ticks, l.steps, l.last = ticks, 0, 0
}

func (l *Log) Step(n int) {
	l.steps += n
	if l.ticks <= 0 {
		return
	}
	every := l.Every
	if every <= 0 {
		every = 25
	}
	pct := l.steps * 100 / l.ticks
	if pct >= l.last+every {
		l.last = pct - pct%every
		logging.Debugf("[progress] %s: %d%% (%d/%d)", l.title, pct, l.steps, l.ticks)
	}
}

func (l *Log) SetStatus(s string) { logging.Debugf("[progress] %s: %s", l.title, s) }

func (l *Log) Done() {
	logging.Debugf("[progress] %s: done after %d of %d steps", l.title, l.steps, l.ticks)
}

// Multi fans every update out to several indicators.
type Multi []Indicator

func (m Multi) Begin(title string) {
	for _, i := range m {
		i.Begin(title)
	}
}

func (m Multi) SetTicks(ticks int) {
	for _, i := range m {
		i.SetTicks(ticks)
	}
}

func (m Multi) Step(n int) {
	for _, i := range m {
		i.Step(n)
	}
}

func (m Multi) SetStatus(s string) {
	for _, i := range m {
		i.SetStatus(s)
	}
}

func (m Multi) Done() {
	for _, i := range m {
		i.Done()
	}
}
