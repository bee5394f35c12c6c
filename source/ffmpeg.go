package source

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
)

// FFmpeg decodes video through an external ffmpeg process emitting
// raw rgb24 frames on stdout. The process is scaled and paced by
// ffmpeg itself; Next blocks on the pipe.
type FFmpeg struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc

	width   int
	height  int
	fps     int
	buf     []byte
	delayMs int
	closed  bool
}

// OpenFFmpeg starts decoding path at the given pixel dimensions and
// frame rate. Cancelling ctx kills the process; Close does the same.
func OpenFFmpeg(ctx context.Context, path string, width, height, fps int) (*FFmpeg, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("source: ffmpeg scale %dx%d invalid", width, height)
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("source: ffmpeg not found in PATH")
	}
	if fps < 1 {
		fps = 15
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-v", "quiet",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%d", width, height, fps),
		"-an",
		"pipe:1",
	)
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("source: ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("source: starting ffmpeg: %w", err)
	}

	return &FFmpeg{
		cmd:     cmd,
		stdout:  stdout,
		cancel:  cancel,
		width:   width,
		height:  height,
		fps:     fps,
		buf:     make([]byte, width*height*3),
		delayMs: 1000 / fps,
	}, nil
}

// Next reads one raw frame from the pipe and converts it to RGBA.
// Returns io.EOF when the stream ends or the process was cancelled.
func (f *FFmpeg) Next() (*image.RGBA, int, error) {
	if f.closed {
		return nil, 0, io.EOF
	}
	if _, err := io.ReadFull(f.stdout, f.buf); err != nil {
		// Short reads at stream end are exhaustion, not faults.
		return nil, 0, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i := 0; i < f.width*f.height; i++ {
		img.Pix[i*4+0] = f.buf[i*3+0]
		img.Pix[i*4+1] = f.buf[i*3+1]
		img.Pix[i*4+2] = f.buf[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img, f.delayMs, nil
}

// Close kills the decode process and reaps it.
func (f *FFmpeg) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.cancel()
	return f.cmd.Wait()
}
