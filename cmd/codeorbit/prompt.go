package main

import (
	"strings"

	"github.com/pterm/pterm"
)

// promptIfEmpty asks for value interactively when the flag was not given.
func promptIfEmpty(value *string, label string, secret bool) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	input := pterm.DefaultInteractiveTextInput
	if secret {
		input = *input.WithMask("*")
	}
	answer, err := input.Show(label)
	if err != nil {
		return err
	}
	*value = strings.TrimSpace(answer)
	return nil
}
