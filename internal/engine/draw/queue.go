// Package draw collects a frame's draw commands and replays them back to
// front.
package draw

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/pkg/math"
)

// ErrNonFiniteDepth is returned when a command's depth key is NaN or infinite.
var ErrNonFiniteDepth = errors.New("draw command depth is not finite")

// Type selects the mesh a command draws.
type Type int

const (
	Quad Type = iota
	Cube
)

func (t Type) String() string {
	switch t {
	case Quad:
		return "quad"
	case Cube:
		return "cube"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Command is one deferred draw call.
type Command struct {
	// Z is the depth key; larger is farther and drawn first.
	Z               float32
	Shader          string
	Transform       math.Mat4
	ApplyProjection bool
	Type            Type
	ScaleForBg      float32
	// Params holds two RGBA slots.
	Params [8]float32
	// Texture is the texture name, or "" for none.
	Texture string
}

// Backend executes draw commands.
type Backend interface {
	Draw(cmd *Command) error
}

// commandHeap is a max-heap on Z.
type commandHeap []Command

func (h commandHeap) Len() int           { return len(h) }
func (h commandHeap) Less(i, j int) bool { return h[i].Z > h[j].Z }
func (h commandHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *commandHeap) Push(x interface{}) {
	*h = append(*h, x.(Command))
}

func (h *commandHeap) Pop() interface{} {
	old := *h
	n := len(old)
	cmd := old[n-1]
	*h = old[:n-1]
	return cmd
}

// Queue holds the commands of the frame being built.
type Queue struct {
	items commandHeap
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds a command to the current frame.
func (q *Queue) Push(cmd Command) error {
	if math32.IsNaN(cmd.Z) || math32.IsInf(cmd.Z, 0) {
		return fmt.Errorf("push %s command with shader %q: %w", cmd.Type, cmd.Shader, ErrNonFiniteDepth)
	}
	heap.Push(&q.items, cmd)
	return nil
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	return len(q.items)
}

// Flush draws every queued command from farthest to nearest and leaves the
// queue empty. Commands pushed while flushing belong to the next frame.
// The first backend error stops the flush; remaining commands are dropped.
func (q *Queue) Flush(b Backend) error {
	frame := q.items
	q.items = nil

	for frame.Len() > 0 {
		cmd := heap.Pop(&frame).(Command)
		if err := b.Draw(&cmd); err != nil {
			return fmt.Errorf("draw %s command with shader %q: %w", cmd.Type, cmd.Shader, err)
		}
	}
	return nil
}
