// Package record captures and plays raw PCM audio through external
// recorder binaries.
//
// The microphone is an exclusive resource: exactly one capture may be
// active per recorder, and every path out of a capture, success, failure,
// or abort, releases it. Audio bytes flow from a producer goroutine reading
// the recorder's stdout through a channel to a consumer that assembles the
// final buffer, so Stop never loses a chunk that was read before the
// recorder exited.
package record

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

var (
	// ErrPermission reports that the capture device could not be opened.
	ErrPermission = errors.New("microphone access denied")

	// ErrAlreadyRecording reports a Start while a capture is active.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording reports a Stop with no capture active.
	ErrNotRecording = errors.New("not recording")
)

// SampleRate is the capture and playback rate in Hz.
const SampleRate = 24000

// DefaultRecordCommand captures signed 16-bit mono PCM on stdout.
func DefaultRecordCommand() []string {
	return []string{"arecord", "-q", "-f", "S16_LE", "-r", "24000", "-c", "1", "-t", "raw"}
}

// DefaultPlayCommand plays signed 16-bit mono PCM from stdin.
func DefaultPlayCommand() []string {
	return []string{"aplay", "-q", "-f", "S16_LE", "-r", "24000", "-c", "1", "-t", "raw"}
}

// Recorder captures one audio take at a time.
type Recorder interface {
	// Start begins capturing. Fails with ErrAlreadyRecording if a capture
	// is active, or ErrPermission if the device cannot be opened.
	Start(ctx context.Context) error

	// Stop ends the capture and returns everything recorded since Start.
	Stop() ([]byte, error)

	// Abort ends any active capture and discards its audio. Safe to call
	// when no capture is active.
	Abort() error
}

// ExecRecorder captures audio by running an external recorder binary and
// collecting its stdout.
type ExecRecorder struct {
	command []string

	mu    sync.Mutex
	cmd   *exec.Cmd
	done  chan struct{}
	buf   *bytes.Buffer
	rderr error
}

// NewExecRecorder creates a recorder running the given command, or the
// default capture command when none is given.
func NewExecRecorder(command []string) *ExecRecorder {
	if len(command) == 0 {
		command = DefaultRecordCommand()
	}
	return &ExecRecorder{command: command}
}

// Start implements Recorder.
func (r *ExecRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return ErrAlreadyRecording
	}

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open recorder pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, os.ErrPermission) || errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrPermission, err)
		}
		return fmt.Errorf("start recorder: %w", err)
	}

	chunks := make(chan []byte, 16)
	done := make(chan struct{})
	buf := &bytes.Buffer{}

	// Producer: drain stdout in chunks until the recorder exits, then
	// close the channel so the consumer knows the take is complete.
	go func() {
		defer close(chunks)
		for {
			chunk := make([]byte, 4096)
			n, err := stdout.Read(chunk)
			if n > 0 {
				chunks <- chunk[:n]
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					r.mu.Lock()
					r.rderr = err
					r.mu.Unlock()
				}
				return
			}
		}
	}()

	// Consumer: assemble the final buffer.
	go func() {
		defer close(done)
		for chunk := range chunks {
			buf.Write(chunk)
		}
	}()

	r.cmd = cmd
	r.done = done
	r.buf = buf
	r.rderr = nil
	return nil
}

// Stop implements Recorder. It signals the recorder to finish, waits for
// the chunk pipeline to drain, and returns the assembled audio.
func (r *ExecRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	cmd, done, buf := r.cmd, r.done, r.buf
	r.mu.Unlock()

	if cmd == nil {
		return nil, ErrNotRecording
	}

	// Ask the recorder to stop; the pipe closing ends the producer.
	_ = cmd.Process.Signal(os.Interrupt)
	waitErr := cmd.Wait()
	<-done

	r.mu.Lock()
	rderr := r.rderr
	r.cmd, r.done, r.buf = nil, nil, nil
	r.mu.Unlock()

	if rderr != nil {
		return nil, fmt.Errorf("read recorder output: %w", rderr)
	}
	data := buf.Bytes()
	if len(data) == 0 {
		if waitErr != nil {
			return nil, fmt.Errorf("recorder produced no audio: %w", waitErr)
		}
		return nil, errors.New("recorder produced no audio")
	}
	return data, nil
}

// Abort implements Recorder.
func (r *ExecRecorder) Abort() error {
	r.mu.Lock()
	cmd, done := r.cmd, r.done
	r.mu.Unlock()

	if cmd == nil {
		return nil
	}

	_ = cmd.Process.Kill()
	_ = cmd.Wait()
	<-done

	r.mu.Lock()
	r.cmd, r.done, r.buf = nil, nil, nil
	r.mu.Unlock()
	return nil
}

// Player plays raw PCM audio by piping it to an external player binary.
type Player struct {
	command []string
}

// NewPlayer creates a player running the given command, or the default
// play command when none is given.
func NewPlayer(command []string) *Player {
	if len(command) == 0 {
		command = DefaultPlayCommand()
	}
	return &Player{command: command}
}

// Play blocks until the audio finishes. Playback is best effort; callers
// usually log the error and move on.
func (p *Player) Play(ctx context.Context, data []byte) error {
	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play audio: %w", err)
	}
	return nil
}
