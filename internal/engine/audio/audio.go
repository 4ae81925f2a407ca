// Package audio plays the game's music and sound effects through beep.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Effect names a game sound.
type Effect int

const (
	Splash Effect = iota // Ball hit the environment
	Hit                  // Ball hit the player
	Finish               // Player went through the gate
)

// Tone is a synthesized effect: a sine sweep from one pitch to another.
type Tone struct {
	From, To float64 // Hz
	Duration time.Duration
	Steps    int
}

// DefaultTones are used for effects without a loaded sound.
var DefaultTones = map[Effect]Tone{
	Splash: {From: 660, To: 330, Duration: 120 * time.Millisecond, Steps: 4},
	Hit:    {From: 220, To: 110, Duration: 250 * time.Millisecond, Steps: 5},
	Finish: {From: 440, To: 880, Duration: 400 * time.Millisecond, Steps: 8},
}

// Manager handles audio playback for the game.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Music
	musicStreamer beep.StreamSeekCloser
	musicCtrl     *beep.Ctrl
	musicVolume   *effects.Volume
	musicPlaying  bool

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	musicVolLvl  float64
	sfxVolLevel  float64

	// Loaded effect buffers; effects without one are synthesized.
	sounds map[Effect]*beep.Buffer

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		musicVolLvl:  0.7,
		sfxVolLevel:  1.0,
		sounds:       make(map[Effect]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)
	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopMusicInternal()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetMusicVolume sets the music volume (0.0 to 1.0).
func (m *Manager) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolLvl = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// MusicVolume returns the music volume.
func (m *Manager) MusicVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicVolLvl
}

// SFXVolume returns the SFX volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

func (m *Manager) updateMusicVolume() {
	if m.musicVolume == nil {
		return
	}
	vol := m.masterVolume * m.musicVolLvl
	m.musicVolume.Silent = vol <= 0
	m.musicVolume.Volume = gain(vol)
}

// gain converts a 0-1 volume to the base 2 exponent used by effects.Volume.
func gain(vol float64) float64 {
	if vol <= 0 {
		return -10 // Effectively silent
	}
	return gomath.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Manager) decode(data []byte) (beep.StreamSeekCloser, beep.Streamer, error) {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}
	if format.SampleRate != m.sampleRate {
		return streamer, beep.Resample(4, format.SampleRate, m.sampleRate, streamer), nil
	}
	return streamer, streamer, nil
}

// LoadEffect replaces the synthesized sound of e with WAV data.
func (m *Manager) LoadEffect(e Effect, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	streamer, resampled, err := m.decode(data)
	if err != nil {
		return err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	m.sounds[e] = buf
	return nil
}

// Stream returns a fresh streamer for the effect.
func (m *Manager) Stream(e Effect) (beep.Streamer, error) {
	m.mu.RLock()
	buf := m.sounds[e]
	m.mu.RUnlock()

	if buf != nil {
		return buf.Streamer(0, buf.Len()), nil
	}
	tone, ok := DefaultTones[e]
	if !ok {
		return nil, fmt.Errorf("no sound for effect %d", e)
	}
	return sweep(m.sampleRate, tone)
}

// sweep chains short sine segments stepping from tone.From to tone.To.
func sweep(sr beep.SampleRate, tone Tone) (beep.Streamer, error) {
	steps := max(tone.Steps, 1)
	per := sr.N(tone.Duration) / steps
	parts := make([]beep.Streamer, 0, steps)
	for i := 0; i < steps; i++ {
		f := tone.From
		if steps > 1 {
			f += (tone.To - tone.From) * float64(i) / float64(steps-1)
		}
		s, err := generators.SineTone(sr, f)
		if err != nil {
			return nil, fmt.Errorf("sine tone %.0fHz: %w", f, err)
		}
		parts = append(parts, beep.Take(per, s))
	}
	return beep.Seq(parts...), nil
}

// Play mixes the effect into the output.
func (m *Manager) Play(e Effect) error {
	m.mu.RLock()
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}

	s, err := m.Stream(e)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gain(sfxVol),
		Silent:   sfxVol <= 0,
	})
	speaker.Unlock()
	return nil
}

// PlayMusic loops WAV data as background music.
func (m *Manager) PlayMusic(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	m.stopMusicInternal()

	streamer, resampled, err := m.decode(data)
	if err != nil {
		return err
	}

	m.musicCtrl = &beep.Ctrl{Streamer: &loopStreamer{streamer: streamer, resampled: resampled}}
	m.musicVolume = &effects.Volume{Streamer: m.musicCtrl, Base: 2}
	m.updateMusicVolume()
	m.musicStreamer = streamer
	m.musicPlaying = true

	speaker.Play(m.musicVolume)
	return nil
}

// StopMusic stops the background music.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicInternal()
}

func (m *Manager) stopMusicInternal() {
	if m.musicCtrl == nil {
		return
	}
	speaker.Lock()
	m.musicCtrl.Paused = true
	speaker.Unlock()

	speaker.Clear()
	// Re-add SFX mixer after clearing
	if m.initialized {
		speaker.Play(m.sfxMixer)
	}
	m.musicPlaying = false
	if m.musicStreamer != nil {
		m.musicStreamer.Close()
		m.musicStreamer = nil
	}
	m.musicCtrl = nil
	m.musicVolume = nil
}

// IsMusicPlaying returns whether music is playing.
func (m *Manager) IsMusicPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicPlaying
}

// loopStreamer rewinds its source when it runs out.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
			if n == 0 && l.streamer.Len() == 0 {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
