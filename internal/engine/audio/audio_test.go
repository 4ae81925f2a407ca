package audio

import "testing"

func TestGain(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -10},
	}

	for _, tt := range tests {
		if got := gain(tt.vol); got != tt.want {
			t.Errorf("gain(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.MasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.MasterVolume())
	}
	if m.MusicVolume() != 0.7 {
		t.Errorf("default music volume = %f, want 0.7", m.MusicVolume())
	}
	if m.SFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.SFXVolume())
	}
	if m.IsInitialized() {
		t.Error("manager initialized before Init")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.MasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.MasterVolume())
	}

	m.SetMasterVolume(2.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.MasterVolume())
	}

	m.SetSFXVolume(-1.0)
	if m.SFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.SFXVolume())
	}
}

func TestPlayRequiresInit(t *testing.T) {
	if err := New().Play(Splash); err == nil {
		t.Error("expected error before Init")
	}
}

func TestSynthesizedEffectLength(t *testing.T) {
	m := New()
	for e, tone := range DefaultTones {
		s, err := m.Stream(e)
		if err != nil {
			t.Fatalf("Stream(%d): %v", e, err)
		}
		total := 0
		buf := make([][2]float64, 512)
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok || n == 0 {
				break
			}
		}
		want := DefaultSampleRate.N(tone.Duration) / tone.Steps * tone.Steps
		if total != want {
			t.Errorf("effect %d: %d samples, want %d", e, total, want)
		}
	}
}

func TestLoadEffectRejectsGarbage(t *testing.T) {
	m := New()
	if err := m.LoadEffect(Hit, []byte("not a wav")); err == nil {
		t.Error("expected decode error")
	}
}
