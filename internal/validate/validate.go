// ABOUTME: Client-side validation rules shared by the TUI and commands
// ABOUTME: Mirrors the backend's account policy so bad input never leaves the process

package validate

import "fmt"

// MinPasswordLength matches the backend's registration minimum
const MinPasswordLength = 6

// Password enforces the minimum password length before anything reaches
// the network
func Password(s string) error {
	if len(s) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
