package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// Player plays an encoded audio stream through an external player
// process (ffplay by default).
type Player struct {
	command string
}

func NewPlayer(command string) *Player {
	if command == "" {
		command = "ffplay"
	}
	return &Player{command: command}
}

// Available reports whether the player binary can be found.
func (p *Player) Available() error {
	if _, err := exec.LookPath(p.command); err != nil {
		return &domain.CapabilityError{
			Capability: "audio playback",
			Reason:     fmt.Sprintf("%s not found in PATH", p.command),
		}
	}
	return nil
}

// Play feeds the audio stream to the player and blocks until playback
// finishes or the context is cancelled. Cancellation is not an error.
func (p *Player) Play(ctx context.Context, audio io.Reader) error {
	cmd := exec.CommandContext(ctx, p.command,
		"-autoexit",
		"-nodisp",
		"-loglevel", "quiet",
		"-i", "-",
	)
	cmd.Stdin = audio
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return fmt.Errorf("playback failed: %w: %s", err, trimmed(stderr.String()))
		}
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}
