package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charithe/scicalc/pkg/calculator"
	"github.com/manifoldco/promptui"
)

// runPrompt reads key presses interactively until Ctrl+C or Ctrl+D. The prompt
// label shows the current display.
func runPrompt(buf *calculator.Buffer) error {
	for {
		prompt := promptui.Prompt{
			Label: displayLabel(buf),
			Validate: func(input string) error {
				_, err := calculator.ParseKey(input)
				return err
			},
		}

		key, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
				return nil
			}
			return err
		}

		if err := press(buf, key); err != nil {
			return err
		}
	}
}

// runScripted applies one key per line from r and writes the display after each.
func runScripted(buf *calculator.Buffer, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := press(buf, line); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, buf.Display()); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func press(buf *calculator.Buffer, key string) error {
	ev, err := calculator.ParseKey(key)
	if err != nil {
		return err
	}
	return calculator.Apply(buf, ev)
}

func displayLabel(buf *calculator.Buffer) string {
	if d := buf.Display(); d != "" {
		return d
	}
	return "0"
}
