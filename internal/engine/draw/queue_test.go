package draw

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

type recordingBackend struct {
	zs     []float32
	onDraw func(cmd *Command) error
}

func (b *recordingBackend) Draw(cmd *Command) error {
	b.zs = append(b.zs, cmd.Z)
	if b.onDraw != nil {
		return b.onDraw(cmd)
	}
	return nil
}

func TestFlushOrder(t *testing.T) {
	q := NewQueue()
	for _, z := range []float32{3, 1, 4, 1, 5} {
		if err := q.Push(Command{Z: z}); err != nil {
			t.Fatalf("Push(%v): %v", z, err)
		}
	}

	var b recordingBackend
	if err := q.Flush(&b); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []float32{5, 4, 3, 1, 1}
	if len(b.zs) != len(want) {
		t.Fatalf("drew %d commands, want %d", len(b.zs), len(want))
	}
	for i := range want {
		if b.zs[i] != want[i] {
			t.Errorf("draw %d: z = %v, want %v (order %v)", i, b.zs[i], want[i], b.zs)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after flush: %d", q.Len())
	}
}

func TestPushRejectsNonFiniteDepth(t *testing.T) {
	q := NewQueue()
	tests := []struct {
		name string
		z    float32
	}{
		{"NaN", math32.NaN()},
		{"+Inf", math32.Inf(1)},
		{"-Inf", math32.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := q.Push(Command{Z: tt.z, Shader: "cube"})
			if !errors.Is(err, ErrNonFiniteDepth) {
				t.Errorf("Push(%v) = %v, want ErrNonFiniteDepth", tt.z, err)
			}
		})
	}
	if q.Len() != 0 {
		t.Errorf("rejected commands were queued: %d", q.Len())
	}
}

func TestPushDuringFlushGoesToNextFrame(t *testing.T) {
	q := NewQueue()
	q.Push(Command{Z: 2})
	q.Push(Command{Z: 1})

	b := &recordingBackend{}
	b.onDraw = func(cmd *Command) error {
		return q.Push(Command{Z: cmd.Z + 10})
	}
	if err := q.Flush(b); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(b.zs) != 2 {
		t.Fatalf("first frame drew %v, want two commands", b.zs)
	}
	if q.Len() != 2 {
		t.Fatalf("next frame holds %d commands, want 2", q.Len())
	}

	next := &recordingBackend{}
	if err := q.Flush(next); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(next.zs) != 2 || next.zs[0] != 12 || next.zs[1] != 11 {
		t.Errorf("second frame drew %v, want [12 11]", next.zs)
	}
}

func TestFlushStopsOnBackendError(t *testing.T) {
	q := NewQueue()
	for _, z := range []float32{1, 2, 3} {
		q.Push(Command{Z: z})
	}

	boom := errors.New("boom")
	b := &recordingBackend{onDraw: func(cmd *Command) error {
		if cmd.Z == 2 {
			return boom
		}
		return nil
	}}
	err := q.Flush(b)
	if !errors.Is(err, boom) {
		t.Fatalf("Flush error = %v, want boom", err)
	}
	if len(b.zs) != 2 {
		t.Errorf("drew %v before failing, want [3 2]", b.zs)
	}
	if q.Len() != 0 {
		t.Errorf("failed frame left %d commands queued", q.Len())
	}
}

func TestEmptyFlush(t *testing.T) {
	var b recordingBackend
	if err := NewQueue().Flush(&b); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(b.zs) != 0 {
		t.Errorf("empty queue drew %v", b.zs)
	}
}
