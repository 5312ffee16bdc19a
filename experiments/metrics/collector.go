package metrics

import (
	"othello/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	IsTreeReset  bool
}

// Throughput returns simulated episodes per second.
func (s SearchMetric) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Episodes) / s.Duration.Seconds()
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Color
	Winner         game.Color // 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

// Collector is shared by the goroutines of one search; its counters are atomic.
type Collector interface {
	Start(goroutines, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

// noop discards everything; searches use it unless metrics are requested.
type noop struct{}

func NewDummyCollector() Collector {
	return noop{}
}

func (noop) Start(int, int)         {}
func (noop) SetTreeReset(bool)      {}
func (noop) AddFullPlayout()        {}
func (noop) AddEpisode()            {}
func (noop) Complete() SearchMetric { return SearchMetric{} }
