package services

import (
	"fmt"
	"testing"
)

func TestGenerateMathProblem(t *testing.T) {
	s := NewCaptchaService()

	for i := 0; i < 100; i++ {
		question, answer := s.GenerateMathProblem()

		var a, b int
		var op string
		if _, err := fmt.Sscanf(question, "%d %s %d", &a, &op, &b); err != nil {
			t.Fatalf("unparseable question %q: %v", question, err)
		}

		var want int
		switch op {
		case "+":
			want = a + b
		case "-":
			want = a - b
		default:
			t.Fatalf("unexpected operator in %q", question)
		}
		if answer != want {
			t.Errorf("%q: answer %d, want %d", question, answer, want)
		}
		if answer < 0 {
			t.Errorf("%q: negative answer %d", question, answer)
		}
	}
}
