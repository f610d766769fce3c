package runtime

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/pipeline"
)

// Scheduler arms one timer per game with an open pending Knight/Potion
// attack. When the timer fires without the defender having played a
// Dragon/Wand in the meantime, it submits the matching Allow* move through
// the same pipeline every client move goes through, so the deadline
// expiry is governed by the exact same CAS race rules as a real player
// action, never a side channel that could corrupt state.
type Scheduler struct {
	pipeline *pipeline.Pipeline

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewScheduler returns a Scheduler bound to p.
func NewScheduler(p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{pipeline: p, timers: map[string]*time.Timer{}}
}

// Rearm inspects s for an open pending attack and (re)schedules or cancels
// gameID's timer accordingly. Called after every committed move.
func (sc *Scheduler) Rearm(gameID string, s *engine.GameState) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if t, ok := sc.timers[gameID]; ok {
		t.Stop()
		delete(sc.timers, gameID)
	}
	if s == nil || s.Phase == engine.PhaseEnded {
		return
	}

	var deadline int64
	var kind engine.MoveKind
	var targetID string
	switch {
	case s.PendingKnightAttack != nil:
		deadline = s.PendingKnightAttack.DeadlineUnixNano
		kind = engine.MoveAllowKnightAttack
		targetID = s.PendingKnightAttack.TargetID
	case s.PendingPotionAttack != nil:
		deadline = s.PendingPotionAttack.DeadlineUnixNano
		kind = engine.MoveAllowPotionAttack
		targetID = s.PendingPotionAttack.TargetID
	default:
		return
	}

	delay := time.Until(time.Unix(0, deadline))
	if delay < 0 {
		delay = 0
	}
	sc.timers[gameID] = time.AfterFunc(delay, func() {
		sc.fire(gameID, targetID, kind, deadline)
	})
}

// Cancel stops and forgets gameID's timer, if any.
func (sc *Scheduler) Cancel(gameID string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if t, ok := sc.timers[gameID]; ok {
		t.Stop()
		delete(sc.timers, gameID)
	}
}

func (sc *Scheduler) fire(gameID, targetID string, kind engine.MoveKind, deadline int64) {
	sc.mu.Lock()
	delete(sc.timers, gameID)
	sc.mu.Unlock()

	mv := engine.Move{
		ID:          fmt.Sprintf("timeout-%s-%s-%d", gameID, kind, deadline),
		GameID:      gameID,
		PlayerID:    targetID,
		Kind:        kind,
		SubmittedAt: time.Now().Unix(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := sc.pipeline.Submit(ctx, gameID, mv); err != nil {
		// Most commonly: the defender already resolved the attack themselves
		// between deadline computation and timer fire (MayAct will have
		// already rejected this synthetic move as not-your-turn or
		// illegal-move). Not actionable beyond logging.
		log.Printf("runtime: defense window expiry for game %s produced %v", gameID, err)
	}
}
