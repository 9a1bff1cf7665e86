package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/soocke/scroll-stitch-go/capture"
	"github.com/soocke/scroll-stitch-go/config"
	"github.com/soocke/scroll-stitch-go/debug"
	"github.com/soocke/scroll-stitch-go/stitch"
)

func main() {
	// Optional .env in the working directory may set SCROLL_STITCH_CONFIG and
	// SCROLL_STITCH_DEBUG before flags are read.
	_ = godotenv.Load()

	var (
		cfgPath   = flag.String("config", os.Getenv("SCROLL_STITCH_CONFIG"), "path to JSON config file")
		outPath   = flag.String("out", "panorama.png", "output image path (format by extension)")
		grabCount = flag.Int("grab", 0, "capture mode: number of screenshots to grab instead of reading files")
		interval  = flag.Duration("interval", 900*time.Millisecond, "capture mode: pause between grabs")
		regionStr = flag.String("region", "", "capture mode: screen region as x,y,w,h (default full screen)")
		debugFlag = flag.Bool("debug", false, "verbose logging plus memory/goroutine tickers")

		levels  = flag.Int("levels", 0, "pyramid levels")
		search  = flag.Float64("search", 0, "coarse search range as a fraction of height (0,1]")
		refine  = flag.Int("refine", 0, "refine window in pixels per finer level")
		stepX   = flag.Int("step-x", 0, "horizontal sampling stride")
		stepY   = flag.Int("step-y", 0, "vertical sampling stride")
		cropTop = flag.Int("crop-top", -1, "rows to ignore at the top of each frame")
		cropBot = flag.Int("crop-bottom", -1, "rows to ignore at the bottom of each frame")
		blend   = flag.Int("blend", -1, "feather band height around the seam")
		minConf = flag.Float64("min-confidence", 0, "confidence threshold for warnings")
		workers = flag.Int("workers", -1, "scoring goroutines (0 = all CPUs)")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	var cfgErr error
	if *cfgPath != "" {
		if loaded, err := config.Load(*cfgPath); err == nil {
			cfg = loaded
		} else {
			cfgErr = err
		}
	}
	if os.Getenv("SCROLL_STITCH_DEBUG") == "1" {
		cfg.Debug = true
	}

	// Flags that were explicitly set win over file and env values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "levels":
			cfg.PyramidLevels = *levels
		case "search":
			cfg.MaxSearchPercent = *search
		case "refine":
			cfg.RefineWindowPx = *refine
		case "step-x":
			cfg.SampleXStep = *stepX
		case "step-y":
			cfg.SampleYStep = *stepY
		case "crop-top":
			cfg.CropTopPx = *cropTop
		case "crop-bottom":
			cfg.CropBottomPx = *cropBot
		case "blend":
			cfg.BlendBandPx = *blend
		case "min-confidence":
			cfg.MinConfidence = *minConf
		case "workers":
			cfg.Workers = *workers
		}
	})
	_ = cfg.Validate()

	logger := NewLogger(LevelFor(cfg.Debug))
	if cfgErr != nil {
		logger.Warn("failed to load config file; using defaults", "path", *cfgPath, "error", cfgErr)
	}
	if cfg.Debug {
		debug.StartMemLogger(2*time.Second, logger)
		debug.StartGoroutineLogger(5*time.Second, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var frames []image.Image
	if *grabCount > 0 {
		region, err := parseRegion(*regionStr)
		if err != nil {
			logger.Error("bad -region value", "value", *regionStr, "error", err)
			os.Exit(1)
		}
		logger.Info("capture mode: scroll the target view between grabs",
			"count", *grabCount, "interval", interval.String())
		grabbed, err := capture.GrabSequence(*grabCount, *interval, region, logger)
		if err != nil {
			logger.Error("screen capture failed", "error", err)
			os.Exit(1)
		}
		for _, f := range grabbed {
			frames = append(frames, f)
		}
	} else {
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "usage: scroll-stitch [flags] frame1.png frame2.png ...")
			flag.PrintDefaults()
			os.Exit(2)
		}
		for _, path := range flag.Args() {
			img, err := imaging.Open(path)
			if err != nil {
				logger.Error("failed to decode frame", "path", path, "error", err)
				os.Exit(1)
			}
			frames = append(frames, img)
		}
	}

	opts := cfg.Options()
	opts.Logger = logger

	res, err := stitch.StitchContext(ctx, frames, opts)
	if err != nil {
		if res == nil {
			logger.Error("stitch failed", "error", err)
			os.Exit(1)
		}
		// Interrupted: keep the partial panorama.
		logger.Warn("stitch interrupted; saving partial panorama",
			"error", err, "joins", len(res.Offsets))
	}

	logger.Info("stitched",
		"frames", len(frames),
		"joins", len(res.Offsets),
		"lowConfidenceJoins", res.Stats.LowConfidenceJoins,
		"avgEstimate", res.Stats.AvgEstimate.String(),
		"width", res.Image.Bounds().Dx(),
		"height", res.Image.Bounds().Dy(),
		"elapsed", res.Stats.TotalDur.String(),
	)

	if err := imaging.Save(res.Image, *outPath); err != nil {
		logger.Error("failed to save panorama", "path", *outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("saved", "path", *outPath)
}

// parseRegion parses "x,y,w,h" into a screen rectangle; empty means nil.
func parseRegion(s string) (*image.Rectangle, error) {
	if s == "" {
		return nil, nil
	}
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("region %dx%d must be positive", w, h)
	}
	r := image.Rect(x, y, x+w, y+h)
	return &r, nil
}
