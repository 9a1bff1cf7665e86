// Package capture grabs screen content for the CLI's capture mode. The
// stitch core never captures; it only consumes decoded frames.
package capture

import (
	"image"
	"log/slog"
	"time"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabSelection captures only the given screen rectangle.
func GrabSelection(selection image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(selection)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabSequence captures count frames spaced by interval, full screen when
// region is nil. The user scrolls the target view by hand between grabs; the
// frames feed the stitcher afterwards. Returns the frames captured so far on
// the first grab error.
func GrabSequence(count int, interval time.Duration, region *image.Rectangle, logger *slog.Logger) ([]*image.RGBA, error) {
	frames := make([]*image.RGBA, 0, count)
	for i := 0; i < count; i++ {
		if i > 0 {
			time.Sleep(interval)
		}
		var (
			img *image.RGBA
			err error
		)
		if region != nil {
			img, err = GrabSelection(*region)
		} else {
			img, err = Grab()
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, img)
		if logger != nil {
			logger.Info("captured frame", "index", i, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		}
	}
	return frames, nil
}
