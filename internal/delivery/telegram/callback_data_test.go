package telegram

import (
	"errors"
	"testing"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	data := buildAnswerCallback("1a2b3c4d", 2, 3)
	if data != "answer:1a2b3c4d:2:3" {
		t.Fatalf("unexpected encoding %q", data)
	}
	if len(data) > maxCallbackDataLen {
		t.Fatalf("callback data too long: %d", len(data))
	}

	answer, err := parseAnswer(decodeCallback(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if answer != (answerCallback{Attempt: "1a2b3c4d", Question: 2, Option: 3}) {
		t.Fatalf("unexpected answer %+v", answer)
	}

	index, err := parseQuizStart(decodeCallback(buildQuizStartCallback(4)))
	if err != nil || index != 4 {
		t.Fatalf("unexpected quiz start %d, %v", index, err)
	}

	for _, data := range []string{buildMenuCallback(), buildRestartCallback(), buildNextCallback()} {
		cd := decodeCallback(data)
		if cd.Action != data || len(cd.Params) != 0 {
			t.Fatalf("unexpected decoding of %q: %+v", data, cd)
		}
	}
}

func TestCallbackDataRejectsMalformed(t *testing.T) {
	answers := []string{
		"answer",
		"answer:abc:1",
		"answer::1:2",
		"answer:abc:x:2",
		"answer:abc:1:-1",
		"quiz:start:1:2",
	}
	for _, data := range answers {
		if _, err := parseAnswer(decodeCallback(data)); !errors.Is(err, ErrMalformedCallback) {
			t.Errorf("parseAnswer(%q): expected ErrMalformedCallback, got %v", data, err)
		}
	}

	starts := []string{"quiz", "quiz:start", "quiz:stop:1", "quiz:start:x", "quiz:start:-2", "answer:a:1:1"}
	for _, data := range starts {
		if _, err := parseQuizStart(decodeCallback(data)); !errors.Is(err, ErrMalformedCallback) {
			t.Errorf("parseQuizStart(%q): expected ErrMalformedCallback, got %v", data, err)
		}
	}
}
