package render

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lineagekit/lineage/pkg/anim"
	"github.com/lineagekit/lineage/pkg/errors"
)

// FramePattern names the frame files; the index keeps the encoder's input
// ordered.
const FramePattern = "frame_%06d.png"

// WriteFrames renders every timeline frame into dir as numbered PNGs.
// Frames are pure functions of their index, so they render concurrently on
// a bounded worker pool; the first failure cancels the rest. onFrame, when
// non-nil, is called after each frame lands with the running count; it must
// be safe for concurrent use.
func WriteFrames(ctx context.Context, tl *anim.Timeline, d *FrameDrawer, dir string, onFrame func(done, total int)) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create frames dir %s", dir)
	}

	total := tl.FrameCount()
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for frame := 0; frame < total; frame++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img := d.Draw(tl.StateAt(frame))
			path := filepath.Join(dir, fmt.Sprintf(FramePattern, frame))
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "create frame %d", frame)
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return errors.Wrap(errors.ErrCodeInternal, err, "encode frame %d", frame)
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write frame %d", frame)
			}
			if onFrame != nil {
				onFrame(int(done.Add(1)), total)
			}
			return nil
		})
	}
	return g.Wait()
}
