package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirm asks question until the user answers y or n (case-insensitive).
// Running out of input counts as a no.
func Confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	for {
		fmt.Fprint(out, question)

		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return false, nil
		}

		fmt.Fprintln(out, "Please answer y or n.")
	}
}

// WaitForEnter blocks until a line (or EOF) is read from in
func WaitForEnter(in *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\nPress Enter to exit...")
	if _, err := in.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
