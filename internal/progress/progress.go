package progress

import (
	"fmt"
	"io"
	"time"
)

const renderEvery = 100 * time.Millisecond

// Tracker prints a one-line counter to w. It renders from the caller's
// goroutine, at most once per renderEvery.
type Tracker struct {
	w         io.Writer
	total     int
	current   int
	message   string
	frame     int
	startTime time.Time
	lastDraw  time.Time
}

// NewProgress starts a tracker. A total of 0 means the total is unknown.
// A nil writer disables output.
func NewProgress(w io.Writer, total int, message string) *Tracker {
	if w == nil {
		w = io.Discard
	}
	return &Tracker{
		w:         w,
		total:     total,
		message:   message,
		startTime: time.Now(),
	}
}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (p *Tracker) render() {
	if p.total > 0 {
		percent := float64(p.current) / float64(p.total) * 100
		fmt.Fprintf(p.w, "\r%s %s [%d/%d] %.0f%%  ",
			spinner[p.frame%len(spinner)], p.message, p.current, p.total, percent)
	} else {
		fmt.Fprintf(p.w, "\r%s %s [%d files]  ",
			spinner[p.frame%len(spinner)], p.message, p.current)
	}
	p.frame++
}

func (p *Tracker) Increment() {
	p.current++
	if now := time.Now(); now.Sub(p.lastDraw) >= renderEvery {
		p.lastDraw = now
		p.render()
	}
}

// Current returns the number of increments so far.
func (p *Tracker) Current() int {
	return p.current
}

func (p *Tracker) Finish() {
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.w, "\r✓ %s (%d files, %s)          \n",
		p.message, p.current, elapsed.Round(time.Millisecond))
}
