// Command sortpoints prints a fallback_offsets block for sprites that have no
// SortPoint child. The offset is measured from the sprite's origin down to
// the lowest opaque row of its image.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/milk9111/topdown/assets"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/levels"
	"gopkg.in/yaml.v3"
)

func main() {
	configPath := flag.String("config", "", "optional config file; pixels_per_unit is read from it")
	origin := flag.String("origin", "center", "sprite origin: center or bottom")
	threshold := flag.Uint("alpha", 0, "alpha (0-255) a pixel must exceed to count as ground")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *threshold > 255 {
		log.Fatalf("alpha %d out of range", *threshold)
	}

	names := flag.Args()
	if len(names) == 0 {
		if names, err = assets.ListImages(); err != nil {
			log.Fatal(err)
		}
	}

	var entries []levels.FallbackOffset
	for _, name := range names {
		img, err := assets.DecodeImage(name)
		if err != nil {
			log.Fatalf("decode %s: %v", name, err)
		}
		originY := float64(img.Bounds().Dy()) / 2
		switch *origin {
		case "center":
		case "bottom":
			originY = float64(img.Bounds().Dy())
		default:
			log.Fatalf("unknown origin %q", *origin)
		}
		offset, ok := groundOffset(img, originY, cfg.World.PixelsPerUnit, uint8(*threshold))
		if !ok {
			log.Printf("%s: no opaque pixels, skipped", name)
			continue
		}
		entries = append(entries, levels.FallbackOffset{Image: name, Offset: math.Round(offset*1000) / 1000})
	}

	out, err := yaml.Marshal(struct {
		FallbackOffsets []levels.FallbackOffset `yaml:"fallback_offsets"`
	}{entries})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(os.Stdout, string(out))
}
