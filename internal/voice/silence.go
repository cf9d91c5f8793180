package voice

import (
	"math"
	"sync"
	"time"
)

const (
	// Polling adapts between these bounds: slow while speech is loud,
	// fast once the level approaches the silence threshold so the
	// callback fires close to the real end of speech.
	MinPollInterval = 50 * time.Millisecond
	MaxPollInterval = 250 * time.Millisecond

	defaultSilenceThresholdDB = -45.0
	defaultSilenceDuration    = 1500 * time.Millisecond

	// Hard cap on one utterance. Continuous speech-level input (a noisy
	// room, talk radio) never goes quiet, so the recording must end on a
	// fixed timeout as well as on silence.
	defaultMaxUtterance = 30 * time.Second

	// A frame whose peak barely rises above its RMS is steady background
	// noise (fan, hum), not speech, even when it is loud.
	speechPeakRatio = 2.5
)

// SilenceDetector watches a stream of PCM frames and fires a callback once
// when the utterance ends: after sustained silence, or when the maximum
// utterance duration elapses regardless of level. The callback is
// single-shot: it will not fire again until Reset is called.
type SilenceDetector struct {
	mu           sync.Mutex
	thresholdDB  float64
	duration     time.Duration
	maxUtterance time.Duration
	onSilence    func()

	startedAt   time.Time
	silentSince time.Time
	lastLevelDB float64
	fired       bool
	heardSpeech bool
}

// NewSilenceDetector creates a detector with the given threshold (dBFS),
// required silence duration, and maximum utterance duration. Zero values
// select the defaults.
func NewSilenceDetector(thresholdDB float64, duration, maxUtterance time.Duration, onSilence func()) *SilenceDetector {
	if thresholdDB == 0 {
		thresholdDB = defaultSilenceThresholdDB
	}
	if duration == 0 {
		duration = defaultSilenceDuration
	}
	if maxUtterance == 0 {
		maxUtterance = defaultMaxUtterance
	}
	return &SilenceDetector{
		thresholdDB:  thresholdDB,
		duration:     duration,
		maxUtterance: maxUtterance,
		onSilence:    onSilence,
		lastLevelDB:  0,
	}
}

// Feed analyses one frame of 16-bit mono PCM samples. It returns true when
// the frame counts as speech. now is injected for testability.
func (d *SilenceDetector) Feed(samples []int16, now time.Time) bool {
	rmsDB, peakRatio := frameLevels(samples)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastLevelDB = rmsDB
	speaking := rmsDB > d.thresholdDB && peakRatio >= speechPeakRatio

	if d.startedAt.IsZero() {
		d.startedAt = now
	}
	if !d.fired && now.Sub(d.startedAt) >= d.maxUtterance {
		d.fired = true
		if d.onSilence != nil {
			go d.onSilence()
		}
		return speaking
	}

	if speaking {
		d.heardSpeech = true
		d.silentSince = time.Time{}
		return true
	}

	// Silence before any speech does not count toward the timeout;
	// otherwise the detector would fire while the visitor is still
	// deciding what to say.
	if !d.heardSpeech || d.fired {
		return false
	}

	if d.silentSince.IsZero() {
		d.silentSince = now
		return false
	}

	if now.Sub(d.silentSince) >= d.duration {
		d.fired = true
		if d.onSilence != nil {
			go d.onSilence()
		}
	}
	return false
}

// PollInterval suggests how long to wait before the next frame: short when
// the level is within 10dB of the threshold, long when speech is clearly
// ongoing.
func (d *SilenceDetector) PollInterval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	margin := d.lastLevelDB - d.thresholdDB
	if margin <= 0 {
		return MinPollInterval
	}
	if margin >= 10 {
		return MaxPollInterval
	}
	scaled := MinPollInterval + time.Duration(float64(MaxPollInterval-MinPollInterval)*margin/10)
	return scaled
}

// Fired reports whether the silence callback has been issued.
func (d *SilenceDetector) Fired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired
}

// Reset re-arms the detector for the next utterance.
func (d *SilenceDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fired = false
	d.heardSpeech = false
	d.startedAt = time.Time{}
	d.silentSince = time.Time{}
	d.lastLevelDB = 0
}

// frameLevels returns the RMS level in dBFS and the peak-to-RMS ratio of a
// frame. An empty frame reports total silence.
func frameLevels(samples []int16) (rmsDB, peakRatio float64) {
	if len(samples) == 0 {
		return -120, 0
	}

	var sumSquares float64
	var peak float64
	for _, s := range samples {
		v := float64(s) / 32768.0
		sumSquares += v * v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	rms := math.Sqrt(sumSquares / float64(len(samples)))
	if rms == 0 {
		return -120, 0
	}
	return 20 * math.Log10(rms), peak / rms
}
