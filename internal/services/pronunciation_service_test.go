package services

import (
	"context"
	"errors"
	"testing"

	api_models "virtualagent-backend/internal/models"
)

func TestPronunciationService_ApplyAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewPronunciationService(&fakeStore{})

	pairs := []api_models.CreatePronunciationRequest{
		{Word: "AI", Pronunciation: "ay eye"},
		{Word: "SQL", Pronunciation: "sequel"},
	}
	for _, p := range pairs {
		if _, err := svc.CreatePronunciation(ctx, p); err != nil {
			t.Fatalf("CreatePronunciation(%q): %v", p.Word, err)
		}
	}

	cases := []struct {
		in   string
		want string
	}{
		{"Our AI helps you.", "Our ay eye helps you."},
		{"ai at the start", "ay eye at the start"},
		{"We maintain SQL databases.", "We maintain sequel databases."},
		// "AI" inside a larger word stays untouched.
		{"We maintain quality.", "We maintain quality."},
		{"AI, right?", "ay eye, right?"},
		{"", ""},
	}
	for _, tc := range cases {
		got, err := svc.ApplyAll(ctx, tc.in)
		if err != nil {
			t.Fatalf("ApplyAll(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ApplyAll(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPronunciationService_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPronunciationService(&fakeStore{})

	_, err := svc.CreatePronunciation(context.Background(), api_models.CreatePronunciationRequest{Word: " ", Pronunciation: "x"})
	if !errors.Is(err, ErrPronunciationValidation) {
		t.Fatalf("err = %v, want ErrPronunciationValidation", err)
	}
	_, err = svc.CreatePronunciation(context.Background(), api_models.CreatePronunciationRequest{Word: "AI"})
	if !errors.Is(err, ErrPronunciationValidation) {
		t.Fatalf("err = %v, want ErrPronunciationValidation", err)
	}
}

func TestReplaceWord_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text, word, repl, want string
	}{
		{"GDPR applies", "GDPR", "G D P R", "G D P R applies"},
		{"the word gdpr lowercased", "GDPR", "G D P R", "the word G D P R lowercased"},
		{"word at end: GDPR", "GDPR", "G D P R", "word at end: G D P R"},
		{"no match here", "GDPR", "G D P R", "no match here"},
		{"ungdprlike stays", "GDPR", "G D P R", "ungdprlike stays"},
	}
	for _, tc := range cases {
		if got := replaceWord(tc.text, tc.word, tc.repl); got != tc.want {
			t.Fatalf("replaceWord(%q, %q) = %q, want %q", tc.text, tc.word, got, tc.want)
		}
	}
}
