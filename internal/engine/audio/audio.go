// Package audio plays short sound effects through beep's speaker.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/logger"
)

// DefaultSampleRate is the playback rate every effect is resampled to.
const DefaultSampleRate = beep.SampleRate(44100)

// Effect names used by the game.
const (
	SoundPlace = "place"
	SoundWin   = "win"
)

// minExponent is quiet enough to be inaudible.
const minExponent = -16

// ErrUnknownSound is returned by Play for names that were never loaded.
var ErrUnknownSound = errors.New("unknown sound")

// Manager holds decoded effects and mixes them onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	sounds map[string]*beep.Buffer
	mixer  *beep.Mixer
	log    *zap.Logger
}

// New creates an audio manager with full volume.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sounds:       make(map[string]*beep.Buffer),
		mixer:        &beep.Mixer{},
		log:          logger.Named("audio"),
	}
}

// Init opens the speaker. Until it succeeds Play is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized reports whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load decodes WAV data and stores it under name, replacing any previous entry.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		source = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  m.sampleRate,
		NumChannels: 2,
		Precision:   2,
	})
	buffer.Append(source)

	m.mu.Lock()
	m.sounds[name] = buffer
	m.mu.Unlock()

	m.log.Debug("sound loaded",
		zap.String("name", name),
		zap.Duration("length", m.sampleRate.D(buffer.Len())),
	)
	return nil
}

// Has reports whether a sound was loaded under name.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sounds[name]
	return ok
}

// Length returns the duration of a loaded sound.
func (m *Manager) Length(name string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buffer, ok := m.sounds[name]
	if !ok {
		return 0, false
	}
	return m.sampleRate.D(buffer.Len()), true
}

// Play starts a loaded effect. Overlapping calls mix.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	buffer, ok := m.sounds[name]
	initialized := m.initialized
	vol := m.effectiveVolume()
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	if !initialized || vol <= 0 {
		return nil
	}

	volStreamer := &effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   gainExponent(vol),
	}

	speaker.Lock()
	m.mixer.Add(volStreamer)
	speaker.Unlock()
	return nil
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences every effect without touching the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effect volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether effects are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// effectiveVolume expects m.mu to be held.
func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.sfxVolLevel
}

// gainExponent maps a linear 0-1 gain onto the exponent of effects.Volume
// with Base 2: vol=1 -> 0, vol=0.5 -> -1.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return minExponent
	}
	return math.Max(math.Log2(vol), minExponent)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
