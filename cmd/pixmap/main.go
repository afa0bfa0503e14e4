// Command pixmap loads an image, runs it through pixel filters and saves the
// result.
//
//	pixmap -in photo@2x.png -out gray.png -filter grayscale,contrast -amount 1.2
//	pixmap -in photo.jpg -out small.png -resize 320x240 -config pipeline.toml
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/filter"
	"github.com/gogpu/bitmap/internal/pipeline"
)

func main() {
	var (
		in      = flag.String("in", "", "input image file")
		out     = flag.String("out", "out.png", "output image file")
		scale   = flag.Float64("scale", 0, "device scale of the input (0 = from @Nx suffix)")
		filters = flag.String("filter", "", "comma-separated filters: "+strings.Join(filter.Names(), ", "))
		amount  = flag.Float64("amount", 1, "filter amount (factor, degrees or radius)")
		resize  = flag.String("resize", "", "resize to WxH pixels before filtering")
		method  = flag.String("method", "linear", "resize method: "+strings.Join(pipeline.Methods(), ", "))
		config  = flag.String("config", "", "TOML pipeline file; flags are applied on top")
		workers = flag.Int("workers", 0, "parallel bands (0 = auto, 1 = serial)")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		bitmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &pipeline.Config{}
	if *config != "" {
		var err error
		if cfg, err = pipeline.Load(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := applyFlags(cfg, *filters, *amount, *resize, *method, *workers); err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	img, err := bitmap.Open(*in)
	if err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
	if *scale > 0 {
		if img, err = bitmap.NewImage(img.Std(), *scale); err != nil {
			log.Fatalf("Invalid scale: %v", err)
		}
	}

	result, err := cfg.Run(img)
	if err != nil {
		log.Fatalf("Failed to process: %v", err)
	}
	if err := result.Save(*out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	size := result.PixelSize()
	log.Printf("Saved %s (%dx%d@%gx)\n", *out, size.X, size.Y, result.Scale())
}

// applyFlags merges command-line settings into cfg and revalidates it.
func applyFlags(cfg *pipeline.Config, filters string, amount float64, resize, method string, workers int) error {
	for name := range strings.SplitSeq(filters, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Filters = append(cfg.Filters, pipeline.Filter{Name: name, Amount: amount})
		}
	}
	if resize != "" {
		var w, h int
		if _, err := fmt.Sscanf(resize, "%dx%d", &w, &h); err != nil {
			return fmt.Errorf("resize %q: want WxH", resize)
		}
		cfg.Resize = &pipeline.Resize{Width: w, Height: h, Method: method}
	}
	if workers != 0 {
		cfg.Workers = workers
	}
	return cfg.Validate()
}
