// Command thdn measures THD and THD+N of generated test tones and WAV
// recordings.
//
// Usage:
//
//	thdn analyze [flags]
//	thdn generate --out tone.wav [flags]
//	thdn plan [flags]
//	thdn window [flags] [window-name ...]
//
// Examples:
//
//	thdn analyze --frequency 1000 --harmonic 3=0.01 --noise 1e-4
//	thdn analyze --wav capture.wav --frequency 997 -o json
//	thdn plan --frequency 50 --window hann --error 0.5 --error-mode absolute
//	thdn window --size 4096 blackman hamming
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
