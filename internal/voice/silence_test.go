package voice

import (
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func speechFrame(n int) []int16 {
	// A loud sine wave: high RMS, peak/RMS ratio sqrt(2).
	// Not enough on its own; add transient spikes like real speech has.
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(float64(i)*0.3))
		if i%50 == 0 {
			samples[i] = 30000
		}
	}
	return samples
}

func quietFrame(n int) []int16 {
	return make([]int16, n)
}

func TestSilenceDetector_FiresOnceAfterSilence(t *testing.T) {
	t.Parallel()

	var fires atomic.Int32
	d := NewSilenceDetector(0, time.Second, 0, func() {
		fires.Add(1)
	})

	now := time.Now()
	if !d.Feed(speechFrame(1600), now) {
		t.Fatal("speech frame not detected as speech")
	}

	d.Feed(quietFrame(1600), now.Add(100*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(500*time.Millisecond))
	if d.Fired() {
		t.Fatal("fired before silence duration elapsed")
	}

	d.Feed(quietFrame(1600), now.Add(1200*time.Millisecond))
	if !d.Fired() {
		t.Fatal("did not fire after silence duration")
	}

	// Further silence must not fire again.
	d.Feed(quietFrame(1600), now.Add(3*time.Second))
	d.Feed(quietFrame(1600), now.Add(5*time.Second))

	waitFor(t, func() bool { return fires.Load() == 1 })
	if got := fires.Load(); got != 1 {
		t.Fatalf("callback fired %d times, want 1", got)
	}
}

func TestSilenceDetector_NoFireBeforeSpeech(t *testing.T) {
	t.Parallel()

	d := NewSilenceDetector(0, 100*time.Millisecond, 0, func() {
		t.Error("fired without any speech")
	})

	now := time.Now()
	for i := 0; i < 20; i++ {
		d.Feed(quietFrame(1600), now.Add(time.Duration(i)*100*time.Millisecond))
	}
	if d.Fired() {
		t.Fatal("detector fired on a stream of pure silence")
	}
}

func TestSilenceDetector_ResetRearms(t *testing.T) {
	t.Parallel()

	var fires atomic.Int32
	d := NewSilenceDetector(0, 100*time.Millisecond, 0, func() {
		fires.Add(1)
	})

	now := time.Now()
	d.Feed(speechFrame(1600), now)
	d.Feed(quietFrame(1600), now.Add(50*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(200*time.Millisecond))
	waitFor(t, func() bool { return fires.Load() == 1 })

	d.Reset()
	if d.Fired() {
		t.Fatal("Fired() still true after Reset")
	}

	now = now.Add(time.Second)
	d.Feed(speechFrame(1600), now)
	d.Feed(quietFrame(1600), now.Add(50*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(200*time.Millisecond))
	waitFor(t, func() bool { return fires.Load() == 2 })
}

func TestSilenceDetector_SpeechInterruptsCountdown(t *testing.T) {
	t.Parallel()

	d := NewSilenceDetector(0, 300*time.Millisecond, 0, func() {
		t.Error("fired though speech resumed")
	})

	now := time.Now()
	d.Feed(speechFrame(1600), now)
	d.Feed(quietFrame(1600), now.Add(100*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(200*time.Millisecond))
	// Speech resumes before the timeout; countdown must restart.
	d.Feed(speechFrame(1600), now.Add(250*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(300*time.Millisecond))
	d.Feed(quietFrame(1600), now.Add(500*time.Millisecond))
	if d.Fired() {
		t.Fatal("fired though the silence was interrupted")
	}
}

func TestSilenceDetector_MaxUtteranceEndsContinuousSpeech(t *testing.T) {
	t.Parallel()

	var fires atomic.Int32
	d := NewSilenceDetector(0, time.Second, 2*time.Second, func() {
		fires.Add(1)
	})

	now := time.Now()
	for i := 0; i < 25; i++ {
		d.Feed(speechFrame(1600), now.Add(time.Duration(i)*100*time.Millisecond))
	}
	if !d.Fired() {
		t.Fatal("uninterrupted speech never ended the recording")
	}
	waitFor(t, func() bool { return fires.Load() == 1 })
	if got := fires.Load(); got != 1 {
		t.Fatalf("callback fired %d times, want 1", got)
	}

	// Reset re-arms the cap for the next utterance.
	d.Reset()
	if d.Fired() {
		t.Fatal("Fired() still true after Reset")
	}
	d.Feed(speechFrame(1600), now.Add(10*time.Second))
	if d.Fired() {
		t.Fatal("cap carried over from the previous utterance")
	}
}

func TestSilenceDetector_DefaultMaxUtterance(t *testing.T) {
	t.Parallel()

	d := NewSilenceDetector(0, 0, 0, nil)

	// Ten minutes of uninterrupted speech-level input, 100ms frames.
	now := time.Now()
	for i := 0; i < 6000; i++ {
		d.Feed(speechFrame(1600), now.Add(time.Duration(i)*100*time.Millisecond))
		if d.Fired() {
			break
		}
	}
	if !d.Fired() {
		t.Fatal("default detector never capped a continuous-speech recording")
	}
}

func TestSilenceDetector_PollIntervalAdapts(t *testing.T) {
	t.Parallel()

	d := NewSilenceDetector(-45, time.Second, 0, nil)

	d.Feed(quietFrame(1600), time.Now())
	if got := d.PollInterval(); got != MinPollInterval {
		t.Fatalf("PollInterval near silence = %v, want %v", got, MinPollInterval)
	}

	d.Feed(speechFrame(1600), time.Now())
	if got := d.PollInterval(); got != MaxPollInterval {
		t.Fatalf("PollInterval during loud speech = %v, want %v", got, MaxPollInterval)
	}
}

func TestFrameLevels(t *testing.T) {
	t.Parallel()

	rmsDB, _ := frameLevels(quietFrame(100))
	if rmsDB != -120 {
		t.Fatalf("silent frame rms = %v dB, want -120", rmsDB)
	}

	rmsDB, ratio := frameLevels(speechFrame(1600))
	if rmsDB < -40 {
		t.Fatalf("speech frame rms = %v dB, want above -40", rmsDB)
	}
	if ratio < speechPeakRatio {
		t.Fatalf("speech frame peak ratio = %v, want >= %v", ratio, speechPeakRatio)
	}

	if rmsDB, _ := frameLevels(nil); rmsDB != -120 {
		t.Fatalf("empty frame rms = %v dB, want -120", rmsDB)
	}
}

// waitFor polls for a condition that is set by the detector's callback
// goroutine.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached within 1s")
}
