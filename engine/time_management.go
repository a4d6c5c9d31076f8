package engine

import (
	"context"
	"time"
)

// TimeHandler decides when a search must stop: either the move budget ran out or the
// caller cancelled the context.
type TimeHandler struct {
	ctx         context.Context
	start       time.Time
	timeForMove time.Time
	hasDeadline bool
}

// StartTime arms the handler. A zero or negative budget means no time limit.
func (th *TimeHandler) StartTime(ctx context.Context, budget time.Duration) {
	th.ctx = ctx
	th.start = time.Now()
	th.hasDeadline = budget > 0
	if th.hasDeadline {
		th.timeForMove = th.start.Add(budget)
	}
	if dl, ok := ctx.Deadline(); ok && (!th.hasDeadline || dl.Before(th.timeForMove)) {
		th.timeForMove = dl
		th.hasDeadline = true
	}
}

/*
  - True if we're out of time or the caller gave up
  - False if we still got time
*/
func (th *TimeHandler) TimeStatus() bool {
	select {
	case <-th.ctx.Done():
		return true
	default:
	}
	return th.hasDeadline && !time.Now().Before(th.timeForMove)
}

// Elapsed returns the time since StartTime.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }
