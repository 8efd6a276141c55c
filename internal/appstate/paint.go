package appstate

import (
	"context"
	"sync"
)

// painter draws frames on its own goroutine. At most one frame waits
// behind the one being drawn; a newer frame replaces it.
type painter struct {
	draw func(context.Context, paintState)
	ctx  context.Context
	ch   chan paintState
	done chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
}

func startPainter(ctx context.Context, draw func(context.Context, paintState)) *painter {
	p := &painter{
		draw: draw,
		ctx:  ctx,
		ch:   make(chan paintState, 1),
		done: make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for st := range p.ch {
		fctx, cancel := context.WithCancel(p.ctx)
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(fctx, st)
		p.mu.Lock()
		p.cancel = nil
		if fctx.Err() == nil {
			p.drops = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// submit queues st. The frame in progress is cancelled unless
// frameDropThreshold frames in a row have already been dropped. Only the
// event loop calls submit, so after the pending frame is discarded the send
// cannot block.
func (p *painter) submit(st paintState) {
	p.mu.Lock()
	if p.cancel != nil && p.drops < frameDropThreshold {
		p.cancel()
		p.drops++
	}
	p.mu.Unlock()
	select {
	case <-p.ch:
	default:
	}
	p.ch <- st
}

// interrupt cancels the frame in progress.
func (p *painter) interrupt() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
}

// stop cancels the current frame, drops any pending one and waits for the
// goroutine to exit, after which the window may be released.
func (p *painter) stop() {
	p.interrupt()
	select {
	case <-p.ch:
	default:
	}
	close(p.ch)
	<-p.done
}
