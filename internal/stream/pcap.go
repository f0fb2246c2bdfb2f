package stream

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket/pcapgo"

	"github.com/hexleaf/wirecut/internal/core"
)

// ReadFrames reads Ethernet frames from a pcap capture file.
func ReadFrames(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read capture header: %w", err)
	}

	var frames [][]byte
	for {
		data, _, err := r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", len(frames), err)
		}
		// the reader reuses its buffer between calls
		frame := make([]byte, len(data))
		copy(frame, data)
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return nil, core.ErrNoFrames
	}
	return frames, nil
}
