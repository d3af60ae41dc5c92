package sound

import (
	"math"
	"testing"
)

func TestCueLengthAndRange(t *testing.T) {
	s := NewCue(SampleRate)
	want := SampleRate.N(CueDuration)

	buf := make([][2]float64, 256)
	total := 0
	peak := 0.0
	var last float64
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < -1 || v > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, v)
			}
			if buf[i][1] != v {
				t.Fatalf("sample %d is not mono", total+i)
			}
			peak = math.Max(peak, math.Abs(v))
			last = v
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}

	if total != want {
		t.Errorf("cue is %d samples, want %d", total, want)
	}
	if peak < 0.1 {
		t.Errorf("cue peak %f is too quiet", peak)
	}
	if math.Abs(last) > peak/10 {
		t.Errorf("cue should decay: last %f, peak %f", last, peak)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := NewPlayer(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked before Init: %v", r)
		}
	}()

	p.PlayCue()
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("player should report muted")
	}
	p.SetMuted(false)
	if p.Muted() {
		t.Error("player should report unmuted")
	}
	p.Close()
}
