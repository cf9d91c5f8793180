package voice

import "testing"

func TestAnimationForReply(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want Animation
	}{
		{"Hello! Welcome to our showroom.", AnimationGreeting},
		{"Bonjour, comment puis-je vous aider ?", AnimationGreeting},
		{"Goodbye, have a great day!", AnimationFarewell},
		{"Au revoir et bonne journée !", AnimationFarewell},
		{"Hmm, let me think about that.", AnimationThinking},
		{"Would you like to book a test drive?", AnimationQuestion},
		{"Our opening hours are 9 to 5.", AnimationTalking},
		{"", AnimationTalking},
	}

	for _, tc := range cases {
		if got := AnimationForReply(tc.text); got != tc.want {
			t.Errorf("AnimationForReply(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestAnimationForReply_FarewellBeatsGreeting(t *testing.T) {
	t.Parallel()

	// A closing line often contains both buckets; the farewell wins so the
	// avatar waves off instead of waving in.
	got := AnimationForReply("It was lovely to welcome you today, goodbye!")
	if got != AnimationFarewell {
		t.Fatalf("AnimationForReply = %s, want %s", got, AnimationFarewell)
	}
}

func TestAnimationForState(t *testing.T) {
	t.Parallel()

	cases := map[State]Animation{
		StateIdle:      AnimationIdle,
		StateListening: AnimationListening,
		StateThinking:  AnimationThinking,
		StateSpeaking:  AnimationTalking,
	}
	for state, want := range cases {
		if got := AnimationForState(state); got != want {
			t.Errorf("AnimationForState(%s) = %s, want %s", state, got, want)
		}
	}
}
