package speech

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestPlayerPlayConsumesStream(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "play.sh", "#!/usr/bin/env bash\ncat > /dev/null\n")
	player := NewPlayer(script)

	err := player.Play(context.Background(), strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
}

func TestPlayerPlayFailureIncludesStderr(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "fail.sh", "#!/usr/bin/env bash\necho 'codec error' 1>&2\nexit 1\n")
	player := NewPlayer(script)

	err := player.Play(context.Background(), strings.NewReader("audio-bytes"))
	if err == nil {
		t.Fatalf("expected playback error")
	}
	if !strings.Contains(err.Error(), "codec error") {
		t.Fatalf("expected stderr detail, got %v", err)
	}
}

func TestPlayerPlayCancellationIsNotAnError(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "hang.sh", "#!/usr/bin/env bash\nsleep 5\n")
	player := NewPlayer(script)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	if err := player.Play(ctx, strings.NewReader("audio-bytes")); err != nil {
		t.Fatalf("cancelled playback should not error: %v", err)
	}
}

func TestPlayerAvailableMissingBinary(t *testing.T) {
	t.Parallel()

	player := NewPlayer("definitely-not-a-real-binary")
	if err := player.Available(); err == nil {
		t.Fatalf("expected availability error")
	}
}
