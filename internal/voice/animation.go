package voice

import "strings"

// Animation names an avatar animation clip.
type Animation string

const (
	AnimationIdle      Animation = "idle"
	AnimationListening Animation = "listening"
	AnimationTalking   Animation = "talking"
	AnimationThinking  Animation = "thinking"
	AnimationGreeting  Animation = "greeting"
	AnimationFarewell  Animation = "farewell"
	AnimationQuestion  Animation = "question"
)

var greetingWords = []string{
	"hello", "hi there", "welcome", "good morning", "good afternoon",
	"bonjour", "salut", "bienvenue",
}

var farewellWords = []string{
	"goodbye", "bye", "see you", "take care", "have a great day",
	"au revoir", "à bientôt", "bonne journée",
}

var thinkingWords = []string{
	"let me think", "let me check", "one moment", "hmm",
	"laissez-moi réfléchir", "un instant",
}

// AnimationForReply picks the clip to play while the assistant speaks a
// reply. Keyword buckets are checked in priority order; anything else is
// plain talking.
func AnimationForReply(text string) Animation {
	lower := strings.ToLower(text)

	for _, w := range farewellWords {
		if strings.Contains(lower, w) {
			return AnimationFarewell
		}
	}
	for _, w := range greetingWords {
		if strings.Contains(lower, w) {
			return AnimationGreeting
		}
	}
	for _, w := range thinkingWords {
		if strings.Contains(lower, w) {
			return AnimationThinking
		}
	}
	if strings.Contains(lower, "?") {
		return AnimationQuestion
	}
	return AnimationTalking
}

// AnimationForState picks the clip for a controller state when nothing is
// being spoken.
func AnimationForState(state State) Animation {
	switch state {
	case StateListening:
		return AnimationListening
	case StateThinking:
		return AnimationThinking
	case StateSpeaking:
		return AnimationTalking
	default:
		return AnimationIdle
	}
}
