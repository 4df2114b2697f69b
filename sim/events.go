package sim

import "github.com/jakecoffman/cp"

// EventKind identifies what happened during a step.
type EventKind uint8

const (
	EventEnemyDestroyed EventKind = iota
	EventBossDefeated
	EventPowerupCollected
	EventPlayerHit
	EventStageComplete
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventBossDefeated:
		return "boss_defeated"
	case EventPowerupCollected:
		return "powerup_collected"
	case EventPlayerHit:
		return "player_hit"
	case EventStageComplete:
		return "stage_complete"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one gameplay occurrence, carrying enough data for audio,
// achievement and stats collaborators to react without reaching into
// engine internals. Fields beyond Kind and Pos are populated per kind.
type Event struct {
	Kind       EventKind
	Pos        cp.Vector
	EnemyType  EnemyType
	Powerup    PowerupKind
	ScoreDelta int
	Combo      int
	LivesLeft  int
	Stage      string
	Frame      uint64
}

// eventQueue is a simple FIFO drained once per frame.
type eventQueue struct {
	items []Event
}

func (q *eventQueue) push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *eventQueue) drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
