// Package match runs one game of 3D tic-tac-toe: turn order, placement and
// the end-of-game line animation.
package match

import (
	"errors"

	"github.com/Faultbox/cubetac/internal/engine/tween"
	"github.com/Faultbox/cubetac/internal/game/board"
	"github.com/Faultbox/cubetac/pkg/math"
)

// WinLineDuration is how long the winning line takes to draw, in seconds.
const WinLineDuration = 0.8

// ErrGameOver is returned when a move is submitted after the match ended.
var ErrGameOver = errors.New("match is over")

// Phase identifies the kind of GameState.
type Phase int

const (
	Turn Phase = iota
	GameWon
	GameDrawn
)

func (p Phase) String() string {
	switch p {
	case Turn:
		return "turn"
	case GameWon:
		return "won"
	case GameDrawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// GameState is the match state. Player is set for Turn, Victory for GameWon.
type GameState struct {
	Phase   Phase
	Player  board.BlockType
	Victory board.VictoryInfo
}

// Over reports whether the state is terminal.
func (s GameState) Over() bool {
	return s.Phase != Turn
}

// WinLine is the winning line with its draw-in progress in [0,1].
type WinLine struct {
	Cells    []math.Vec3i
	Progress float32
}

// Match holds the grid and whose turn it is.
type Match struct {
	Grid  board.Grid
	state GameState

	line        *tween.Movement[float32]
	lineStarted bool
}

// New starts a match with first to move.
func New(first board.BlockType) *Match {
	m := &Match{
		line: tween.New[float32](0, 1, WinLineDuration, tween.Ease, tween.Float32),
	}
	m.reset(first)
	return m
}

func (m *Match) reset(first board.BlockType) {
	if first == board.None {
		first = board.Cross
	}
	m.Grid.Reset()
	m.state = GameState{Phase: Turn, Player: first}
	m.line.Stop()
	m.lineStarted = false
}

// State returns the current state.
func (m *Match) State() GameState {
	return m.state
}

// Restart clears the grid and gives the first move to Cross.
func (m *Match) Restart() {
	m.reset(board.Cross)
}

// SubmitClick places the current player's piece at pos. It returns false
// without changing anything when the cell is taken, and ErrGameOver once the
// match has ended.
func (m *Match) SubmitClick(pos math.Vec3i) (bool, error) {
	if m.state.Over() {
		return false, ErrGameOver
	}
	if m.Grid.Get(pos) != board.None {
		return false, nil
	}

	player := m.state.Player
	m.Grid.Set(pos, player)

	if info, ok := board.ScanForVictory(&m.Grid); ok {
		m.state = GameState{Phase: GameWon, Player: info.Winner, Victory: info}
		return true, nil
	}
	if m.Grid.Full() {
		m.state = GameState{Phase: GameDrawn}
		return true, nil
	}

	m.state = GameState{Phase: Turn, Player: player.Opponent()}
	return true, nil
}

// WinLine returns the winning cells and how far the line has been drawn at
// time now. The animation starts on the first call after the win.
func (m *Match) WinLine(now float32) (WinLine, bool) {
	if m.state.Phase != GameWon {
		return WinLine{}, false
	}
	if !m.lineStarted {
		m.line.Restart(now)
		m.lineStarted = true
	}
	return WinLine{
		Cells:    m.state.Victory.Cells(),
		Progress: m.line.Update(now),
	}, true
}
