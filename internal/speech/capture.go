// Package speech provides microphone capture and audio playback via
// external ffmpeg tooling. The recognition and synthesis providers that
// consume these live in subpackages.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// MicConfig describes the capture pipeline. Zero values fall back to
// 16kHz mono PCM from the default pulse device.
type MicConfig struct {
	Command     string
	InputFormat string
	InputDevice string
	SampleRate  int
	Channels    int
}

func (c *MicConfig) applyDefaults() {
	if c.Command == "" {
		c.Command = "ffmpeg"
	}
	if c.InputFormat == "" {
		c.InputFormat = "pulse"
	}
	if c.InputDevice == "" {
		c.InputDevice = "default"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.Channels <= 0 {
		c.Channels = 1
	}
}

// Mic streams raw microphone PCM by running ffmpeg as a subprocess.
type Mic struct {
	cfg MicConfig
}

func NewMic(cfg MicConfig) *Mic {
	cfg.applyDefaults()
	return &Mic{cfg: cfg}
}

// Available reports whether the capture binary can be found. Used at
// wiring time to decide whether voice features are offered at all.
func (m *Mic) Available() error {
	if _, err := exec.LookPath(m.cfg.Command); err != nil {
		return &domain.CapabilityError{
			Capability: "microphone capture",
			Reason:     fmt.Sprintf("%s not found in PATH", m.cfg.Command),
		}
	}
	return nil
}

// Open starts the capture process and returns a PCM stream. The stream
// is s16le at the configured rate and channel count.
func (m *Mic) Open(ctx context.Context) (*MicStream, error) {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", m.cfg.InputFormat,
		"-i", m.cfg.InputDevice,
		"-ac", strconv.Itoa(m.cfg.Channels),
		"-ar", strconv.Itoa(m.cfg.SampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.CommandContext(ctx, m.cfg.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create capture stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start capture process: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// Give ffmpeg a moment to fail fast on a bad device before we hand
	// the stream out.
	select {
	case err := <-waitErr:
		if err != nil {
			return nil, fmt.Errorf("capture process exited before streaming: %w: %s", err, trimmed(stderr.String()))
		}
		return nil, errors.New("capture process exited before streaming")
	case <-time.After(250 * time.Millisecond):
	}

	return &MicStream{
		stdout:  stdout,
		stderr:  &stderr,
		process: cmd.Process,
		waitErr: waitErr,
	}, nil
}

// MicStream is a live microphone PCM stream. Read until Stop.
type MicStream struct {
	stdout io.ReadCloser
	stderr *bytes.Buffer

	process *os.Process
	waitErr <-chan error

	stopOnce sync.Once
	stopErr  error
}

func (s *MicStream) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

func (s *MicStream) Close() error {
	return s.Stop()
}

// Stop interrupts the capture process and reaps it. A plain non-zero
// exit after an interrupt is not an error.
func (s *MicStream) Stop() error {
	s.stopOnce.Do(func() {
		if s.process != nil {
			_ = s.process.Signal(os.Interrupt)
		}

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = normalizeStopErr(err)
			}
		case <-time.After(1200 * time.Millisecond):
			if s.process != nil {
				_ = s.process.Kill()
			}
			err, ok := <-s.waitErr
			if ok {
				s.stopErr = normalizeStopErr(err)
			}
		}

		if closeErr := s.stdout.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			if s.stopErr == nil {
				s.stopErr = closeErr
			}
		}

		if s.stopErr != nil && s.stderr != nil && s.stderr.Len() > 0 {
			s.stopErr = fmt.Errorf("%w: %s", s.stopErr, trimmed(s.stderr.String()))
		}
	})

	return s.stopErr
}

func normalizeStopErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func trimmed(input string) string {
	if input == "" {
		return input
	}
	return string(bytes.TrimSpace([]byte(input)))
}
