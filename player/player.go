package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/wbrown/ansimate"
	"github.com/wbrown/ansimate/document"
)

// FrameSeq produces rendered frames in playback order. Next returns
// io.EOF when the sequence is exhausted.
type FrameSeq interface {
	Next() (*ansimate.Frame, error)
}

// sliceSeq adapts a frame slice to FrameSeq.
type sliceSeq struct {
	frames []*ansimate.Frame
	i      int
}

func (s *sliceSeq) Next() (*ansimate.Frame, error) {
	if s.i >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.i]
	s.i++
	return f, nil
}

// Player writes frames to a terminal with absolute-deadline pacing.
// It owns the terminal for its lifetime and restores it on every exit
// path. The delta buffer keeps the previous frame for braille and
// block modes, where most cells survive between frames.
type Player struct {
	out  *bufio.Writer
	term *Terminal
	mode ansimate.RenderMode
	opts ansimate.RenderOptions

	delta deltaBuffer
	keys  <-chan byte

	// OnResize, when set, is called with the new terminal cell size
	// before the next frame is written. The delta buffer has already
	// been reset for a full redraw.
	OnResize func(w, h int)

	lastW, lastH int
}

// New builds a player for the given output and options.
func New(out io.Writer, mode ansimate.RenderMode, opts ansimate.RenderOptions) (*Player, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	term := NewTerminal(out, opts.AltScreen)
	if opts.UseColor && term.Color == ansimate.ColorOff {
		ansimate.Logger().Warn("color output requested on a colorless terminal",
			"term", os.Getenv("TERM"))
	}
	return &Player{
		out:  bufio.NewWriterSize(out, 1<<16),
		term: term,
		mode: mode,
		opts: opts,
	}, nil
}

// useDelta reports whether this mode diffs frames against the
// previous one. ASCII and matrix frames change almost everywhere per
// frame, so they redraw fully.
func (p *Player) useDelta() bool {
	return p.mode == ansimate.ModeBraille || p.mode == ansimate.ModeBlocks
}

// Play runs one pass over a frame sequence, honoring pause and quit
// keys and the context. The terminal is restored before Play returns,
// whatever the exit path.
func (p *Player) Play(ctx context.Context, frames FrameSeq) error {
	return p.run(ctx, func() FrameSeq { return frames }, 1)
}

// PlayFrames plays a pre-rendered frame list, looping according to
// the options (0 = forever).
func (p *Player) PlayFrames(ctx context.Context, frames []*ansimate.Frame) error {
	return p.run(ctx, func() FrameSeq { return &sliceSeq{frames: frames} }, p.opts.Loops)
}

// PlayDocument plays a loaded document. Frame content is emitted as
// stored; pacing comes from the stored delays and the document's
// speed setting.
func (p *Player) PlayDocument(ctx context.Context, doc *document.Document) error {
	speed := doc.Settings.Speed
	if speed <= 0 {
		speed = 1
	}
	p.opts.Speed = speed
	loops := p.opts.Loops
	if loops == 0 && doc.Settings.Loops > 0 {
		loops = doc.Settings.Loops
	}

	return p.runRaw(ctx, doc, loops)
}

// run owns the terminal, then drives seqFn through loops passes.
func (p *Player) run(ctx context.Context, seqFn func() FrameSeq, loops int) error {
	stopKeys := p.startKeys()
	defer stopKeys()

	p.term.Setup()
	defer p.term.Teardown()
	p.delta.Reset()
	p.lastW, p.lastH = p.term.Size()

	deadline := time.Now()
	for pass := 0; loops == 0 || pass < loops; pass++ {
		seq := seqFn()
		for {
			frame, ferr := seq.Next()
			if errors.Is(ferr, io.EOF) {
				break
			}
			if ferr != nil {
				return ferr
			}

			p.checkResize()
			if err := p.emit(frame); err != nil {
				return err
			}

			deadline = deadline.Add(p.scaledDelay(frame.DelayMs))
			done, werr := p.sleepUntil(ctx, &deadline)
			if werr != nil || done {
				return werr
			}
		}
	}
	return nil
}

// runRaw is the document playback loop: stored content strings are
// written verbatim inside the frame brackets.
func (p *Player) runRaw(ctx context.Context, doc *document.Document, loops int) error {
	stopKeys := p.startKeys()
	defer stopKeys()

	p.term.Setup()
	defer p.term.Teardown()

	deadline := time.Now()
	for pass := 0; loops == 0 || pass < loops; pass++ {
		for _, f := range doc.Frames {
			p.term.BeginFrame()
			if _, err := io.WriteString(p.out, f.Content); err != nil {
				return fmt.Errorf("player: write frame %d: %w", f.Index, err)
			}
			p.term.EndFrame()
			if err := p.out.Flush(); err != nil {
				return fmt.Errorf("player: flush frame %d: %w", f.Index, err)
			}

			deadline = deadline.Add(p.scaledDelay(f.DelayMs))
			done, werr := p.sleepUntil(ctx, &deadline)
			if werr != nil || done {
				return werr
			}
		}
		if !doc.IsAnimated() && loops == 0 {
			// A single still frame needs no replay loop; wait for a
			// quit key or cancellation instead.
			return p.waitForExit(ctx)
		}
	}
	return nil
}

// emit writes one frame inside the synchronized-output bracket,
// delta-encoded when the mode allows it.
func (p *Player) emit(f *ansimate.Frame) error {
	p.term.BeginFrame()

	// Raw terminal mode disables output post-processing, so full
	// frames use the CRLF serialization; the delta path positions the
	// cursor absolutely and needs no line endings at all.
	if p.useDelta() {
		payload, usedDelta := p.delta.Encode(f)
		if usedDelta {
			if _, err := io.WriteString(p.out, payload); err != nil {
				return fmt.Errorf("player: write delta: %w", err)
			}
		} else {
			if _, err := io.WriteString(p.out, f.Content()); err != nil {
				return fmt.Errorf("player: write frame: %w", err)
			}
		}
	} else {
		if _, err := io.WriteString(p.out, f.Content()); err != nil {
			return fmt.Errorf("player: write frame: %w", err)
		}
	}

	p.term.EndFrame()
	if err := p.out.Flush(); err != nil {
		return fmt.Errorf("player: flush: %w", err)
	}
	return nil
}

func (p *Player) scaledDelay(delayMs int) time.Duration {
	if delayMs <= 0 {
		delayMs = 1000 / MatrixTickFallback
	}
	speed := p.opts.Speed
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(delayMs)/speed) * time.Millisecond
}

// MatrixTickFallback is the frame rate assumed for frames that carry
// no delay of their own.
const MatrixTickFallback = 30

// sleepUntil waits for the deadline while observing cancellation and
// keyboard input. Returns done=true on a quit key. A pause freezes
// deadlines: the paused interval shifts the deadline forward.
func (p *Player) sleepUntil(ctx context.Context, deadline *time.Time) (done bool, err error) {
	for {
		wait := time.Until(*deadline)
		if wait <= 0 {
			// Overran: carry the overrun into subsequent deadlines so
			// slow frames catch up rather than pile up.
			return false, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return true, nil
		case <-timer.C:
			return false, nil
		case key := <-p.keys:
			timer.Stop()
			switch key {
			case 'q', 27: // Esc
				return true, nil
			case ' ':
				pausedAt := time.Now()
				if quit, werr := p.waitUnpause(ctx); quit || werr != nil {
					return true, werr
				}
				*deadline = deadline.Add(time.Since(pausedAt))
			}
		}
	}
}

// waitUnpause blocks until Space resumes, a quit key exits, or the
// context cancels.
func (p *Player) waitUnpause(ctx context.Context) (quit bool, err error) {
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case key := <-p.keys:
			switch key {
			case ' ':
				return false, nil
			case 'q', 27:
				return true, nil
			}
		}
	}
}

// waitForExit parks on a quit key or cancellation, for still images.
func (p *Player) waitForExit(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-p.keys:
			switch key {
			case 'q', 27, ' ':
				return nil
			}
		}
	}
}

// checkResize re-reads the terminal size and forces a full redraw
// when it changed since the last frame.
func (p *Player) checkResize() {
	w, h := p.term.Size()
	if w == p.lastW && h == p.lastH {
		return
	}
	p.lastW, p.lastH = w, h
	p.delta.Reset()
	if p.OnResize != nil {
		p.OnResize(w, h)
	}
	ansimate.Logger().Debug("terminal resized", "w", w, "h", h)
}

// startKeys puts stdin into raw mode and feeds single bytes into a
// channel the playback loop selects on. Returns a restore function;
// when stdin is not a terminal, keys are simply absent.
func (p *Player) startKeys() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		p.keys = make(chan byte)
		return func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		p.keys = make(chan byte)
		return func() {}
	}

	keys := make(chan byte, 8)
	done := make(chan struct{})
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				select {
				case keys <- buf[0]:
				case <-done:
					return
				}
			}
		}
	}()

	p.keys = keys
	return func() {
		close(done)
		term.Restore(fd, oldState)
	}
}
