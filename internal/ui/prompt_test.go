package ui

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      bool
		wantAsked int
	}{
		{"yes", "y\n", true, 1},
		{"upper yes", "Y\n", true, 1},
		{"no", "n\n", false, 1},
		{"padded", "  n  \r\n", false, 1},
		{"retry until valid", "maybe\nyes\n\ny\n", true, 4},
		{"eof", "", false, 1},
		{"eof after junk", "what\n", false, 2},
		{"answer without newline", "y", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(bufio.NewReader(strings.NewReader(tt.input)), &out, "Continue? (y/n): ")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if asked := strings.Count(out.String(), "Continue? (y/n): "); asked != tt.wantAsked {
				t.Errorf("asked %d times, want %d\n%s", asked, tt.wantAsked, out.String())
			}
		})
	}
}

func TestConfirmRepromptMessage(t *testing.T) {
	var out bytes.Buffer
	if _, err := Confirm(bufio.NewReader(strings.NewReader("x\nn\n")), &out, "? "); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Please answer y or n.") {
		t.Errorf("missing re-prompt hint in %q", out.String())
	}
}

func TestWaitForEnter(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("\nleftover\n"))

	if err := WaitForEnter(in, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Press Enter to exit...") {
		t.Errorf("output = %q", out.String())
	}

	rest, _ := in.ReadString('\n')
	if rest != "leftover\n" {
		t.Errorf("WaitForEnter consumed more than one line, rest = %q", rest)
	}

	if err := WaitForEnter(bufio.NewReader(strings.NewReader("")), &out); err != nil {
		t.Errorf("WaitForEnter at EOF error = %v", err)
	}
}
