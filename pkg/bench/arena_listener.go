package bench

import "github.com/darkcodi/mcts-lib/pkg/mcts"

// Distributes the arena events between several listeners
type ArenaListener[M mcts.MoveLike] struct {
	listeners []ListenerLike[M]
}

func NewArenaListener[M mcts.MoveLike](listeners ...ListenerLike[M]) *ArenaListener[M] {
	al := &ArenaListener[M]{
		listeners: make([]ListenerLike[M], 0, len(listeners)),
	}
	for _, l := range listeners {
		if l != nil {
			al.listeners = append(al.listeners, l)
		}
	}
	return al
}

func (al *ArenaListener[M]) OnMoveMade(info WorkerInfo[M]) {
	for _, l := range al.listeners {
		l.OnMoveMade(info)
	}
}

func (al *ArenaListener[M]) OnFinishedGame(info WorkerInfo[M]) {
	for _, l := range al.listeners {
		l.OnFinishedGame(info)
	}
}

func (al *ArenaListener[M]) OnFinishedWork(info WorkerInfo[M]) {
	for _, l := range al.listeners {
		l.OnFinishedWork(info)
	}
}

func (al *ArenaListener[M]) Summary(s Summary) {
	for _, l := range al.listeners {
		l.Summary(s)
	}
}
