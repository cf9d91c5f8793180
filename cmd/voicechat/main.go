// Command voicechat is a terminal client for the voice conversation loop:
// it records from the microphone, detects end of speech, and runs each
// utterance through the transcribe -> chat -> speech endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtualagent-backend/internal/voice"
	"virtualagent-backend/pkg/agentclient"
)

// frameBytes returns the byte count of one PCM frame spanning d at the mic
// sample rate, rounded down to whole samples.
func frameBytes(d time.Duration) int {
	samples := int(int64(micSampleRateHz) * int64(d) / int64(time.Second))
	if samples < 1 {
		samples = 1
	}
	return samples * pcmBytesPerSample
}

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "backend base URL")
	language := flag.String("lang", "en", "conversation language (en or fr)")
	userContext := flag.String("context", "", "visitor context passed to the agent")
	flag.Parse()

	if err := run(*baseURL, *language, *userContext); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(baseURL, language, userContext string) error {
	client := agentclient.New(baseURL)
	session := voice.NewSession(language, userContext)

	controller := voice.NewTurnController(client, session, voice.TurnControllerOptions{
		OnState: func(s voice.State) {
			fmt.Printf("\r[%s]          \n", s)
		},
		OnReply: func(text string, animation voice.Animation) {
			fmt.Printf("assistant (%s): %s\n", animation, text)
		},
		Play: playMP3,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stopChan
		fmt.Println("\nStopping...")
		controller.Stop()
		cancel()
	}()

	controller.Start()
	fmt.Println("Conversation started. Speak after the [listening] prompt; Ctrl-C to quit.")

	for controller.Enabled() {
		audio, err := recordUtterance(ctx, controller)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			return err
		}

		err = controller.SubmitAudio(ctx, encodeWAV(audio, micSampleRateHz))
		switch {
		case err == nil:
		case errors.Is(err, voice.ErrAudioTooShort), errors.Is(err, voice.ErrEmptyTranscript):
			// Nothing usable was said; keep listening.
		case errors.Is(err, voice.ErrTurnStopped), errors.Is(err, voice.ErrConversationDisabled):
			return nil
		default:
			log.Printf("turn failed: %v", err)
			if !controller.Enabled() {
				return err
			}
		}
	}

	return nil
}

// recordUtterance captures microphone audio until the silence detector fires,
// either on sustained silence or on the fixed utterance cap, then returns the
// accumulated PCM. Frame sizes follow the detector's adaptive poll interval:
// long frames while speech is clearly ongoing, short frames near the silence
// threshold so the cut lands close to the real end of speech.
func recordUtterance(ctx context.Context, controller *voice.TurnController) ([]byte, error) {
	mic, err := newFFmpegMicCapture()
	if err != nil {
		return nil, err
	}
	defer mic.Close()

	done := make(chan struct{})
	detector := voice.NewSilenceDetector(0, 0, 0, func() {
		close(done)
	})

	var recorded []byte
	frame := make([]byte, frameBytes(voice.MaxPollInterval))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
			return recorded, nil
		default:
		}

		n, readErr := io.ReadFull(mic, frame[:frameBytes(detector.PollInterval())])
		if n > 0 {
			recorded = append(recorded, frame[:n]...)
			detector.Feed(pcmToSamples(frame[:n]), time.Now())
		}
		if readErr != nil {
			if detector.Fired() || len(recorded) > 0 {
				return recorded, nil
			}
			return nil, fmt.Errorf("mic read: %w", readErr)
		}

		if !controller.Enabled() {
			return nil, context.Canceled
		}
	}
}
