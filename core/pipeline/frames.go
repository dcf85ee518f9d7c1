package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	framePrefix = "data:"
	endMessage  = "[DONE]"
)

// frameReader reassembles a raw byte stream into discrete frame payloads.
//
// Bytes arrive in arbitrarily sized chunks with no alignment to frame
// boundaries; partial lines (including partial multi-byte characters) are
// buffered until a newline completes them. Only lines carrying the frame
// prefix are emitted; blank lines and other lines are dropped. A trailing
// unterminated line at stream end cannot form a frame and is discarded.
type frameReader struct {
	reader *bufio.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{reader: bufio.NewReader(r)}
}

// Frames is an iterator over complete frame payloads, in stream order.
//
// The only suspension point is the read on the underlying stream; the
// context is checked between reads so cancellation takes effect before the
// next frame is surfaced. The iterator is not restartable once it returns.
func (f *frameReader) Frames(ctx context.Context) func(func(string, error) bool) {
	return func(yield func(string, error) bool) {
		for {
			if ctx.Err() != nil {
				return
			}

			line, err := f.reader.ReadString('\n')
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return
				}
				yield("", fmt.Errorf("failed to read frame: %w", err))
				return
			}

			line = strings.TrimRight(line, "\r\n")
			if !strings.HasPrefix(line, framePrefix) {
				continue
			}

			payload := strings.TrimSpace(strings.TrimPrefix(line, framePrefix))
			if len(payload) == 0 {
				continue
			}

			if !yield(payload, nil) {
				return
			}
		}
	}
}
