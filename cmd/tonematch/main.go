package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phototone/tonematch/internal/chart"
	"github.com/phototone/tonematch/internal/jpegio"
	"github.com/phototone/tonematch/internal/match"
	"github.com/phototone/tonematch/internal/raster"
	"github.com/phototone/tonematch/internal/session"
	"github.com/phototone/tonematch/internal/tone"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tonematch %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		refPath = flag.String("ref", "", "reference JPEG (tone to match)")
		srcPath = flag.String("src", "", "source JPEG to correct (required)")
		outPath = flag.String("out", "", "output JPEG path (required)")
		method  = flag.String("method", "auto", "matching method: auto, chart, histogram, transfer, none")

		temperature = flag.Int("temperature", 0, "temperature adjustment (-100..100)")
		tint        = flag.Int("tint", 0, "tint adjustment (-100..100)")
		brightness  = flag.Int("brightness", 0, "brightness adjustment (-100..100)")
		contrast    = flag.Int("contrast", 0, "contrast adjustment (-100..100)")
		saturation  = flag.Int("saturation", 0, "saturation adjustment (-100..100)")

		cropSpec = flag.String("crop", "", "crop rectangle as x,y,w,h in source pixels")
		width    = flag.Int("width", 0, "resize target width in pixels")
		height   = flag.Int("height", 0, "resize target height in pixels")
		scale    = flag.Float64("scale", 0, "resize scale percent (overrides width/height)")
		stretch  = flag.Bool("stretch", false, "ignore aspect ratio when both width and height are set")

		dpi     = flag.Int("dpi", tone.DefaultDPI, "DPI written into the output JFIF header")
		quality = flag.Int("quality", jpegio.DefaultQuality, "JPEG output quality (1-100)")
	)
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if *srcPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, err := jpegio.Load(*srcPath)
	if err != nil {
		log.Fatalf("loading source: %v", err)
	}
	panel, err := session.NewPanel(src)
	if err != nil {
		log.Fatalf("source image: %v", err)
	}

	if *method != "none" {
		if *refPath == "" {
			log.Fatalf("method %q requires -ref", *method)
		}
		ref, err := jpegio.Load(*refPath)
		if err != nil {
			log.Fatalf("loading reference: %v", err)
		}
		matched, err := runMatch(*method, panel.Processed(), ref)
		if err != nil {
			log.Fatalf("matching: %v", err)
		}
		if err := panel.CommitMatch(matched); err != nil {
			log.Fatalf("matching: %v", err)
		}
	}

	if *cropSpec != "" {
		var x, y, w, h int
		if _, err := fmt.Sscanf(*cropSpec, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
			log.Fatalf("invalid -crop %q: want x,y,w,h", *cropSpec)
		}
		if err := panel.CommitCrop(x, y, w, h); err != nil {
			log.Fatalf("cropping: %v", err)
		}
	}

	if *scale > 0 || *width > 0 || *height > 0 {
		spec := tone.ResizeSpec{
			Width:          *width,
			Height:         *height,
			ScalePercent:   *scale,
			MaintainAspect: !*stretch,
		}
		if err := panel.CommitResize(spec); err != nil {
			log.Fatalf("resizing: %v", err)
		}
	}

	params := tone.Params{
		Temperature: *temperature,
		Tint:        *tint,
		Brightness:  *brightness,
		Contrast:    *contrast,
		Saturation:  *saturation,
	}
	if !params.Neutral() {
		if err := panel.SetParams(params); err != nil {
			log.Fatalf("adjusting: %v", err)
		}
	}

	opts := jpegio.SaveOptions{Quality: *quality, DPI: *dpi}
	if err := jpegio.Save(*outPath, panel.Processed(), opts); err != nil {
		log.Fatalf("saving: %v", err)
	}

	out := panel.Processed()
	log.Printf("wrote %s (%dx%d, %d dpi)", *outPath, out.Width, out.Height, *dpi)
}

// runMatch selects and runs a matching strategy. In auto mode the precise
// chart-based transform is attempted first, falling back to statistical
// transfer when no chart is visible in both photos.
func runMatch(method string, src, ref *raster.PixelBuffer) (*raster.PixelBuffer, error) {
	detector := chart.NewDetector(chart.DefaultConfig())
	matcher := match.NewMatcher(detector)

	switch method {
	case "chart":
		out, ok, err := matcher.MatchWithChart(src, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no calibration chart found in both images")
		}
		return out, nil

	case "histogram":
		return matcher.MatchHistograms(src, ref)

	case "transfer":
		return matcher.ColorTransfer(src, ref)

	case "auto":
		out, ok, err := matcher.MatchWithChart(src, ref)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Printf("matched using calibration chart")
			return out, nil
		}
		log.Printf("no calibration chart found, falling back to statistical transfer")
		return matcher.ColorTransfer(src, ref)

	default:
		return nil, fmt.Errorf("unknown method %q: want auto, chart, histogram, transfer or none", method)
	}
}
