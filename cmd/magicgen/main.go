// Command magicgen searches magic multipliers for both sliders and writes
// them as the board package's magic_numbers.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/hailam/bitmagic/internal/magicgen"
	"github.com/hailam/bitmagic/internal/storage"
)

var (
	seed       = flag.Uint("seed", uint(magicgen.DefaultSeed), "xorshift seed for candidate generation")
	attempts   = flag.Int("attempts", magicgen.DefaultAttempts, "candidates tried per square before giving up")
	workers    = flag.Int("workers", 1, "squares searched concurrently (1 reproduces the baked table)")
	cacheDir   = flag.String("cache", "", "cache directory (default: platform data dir)")
	noCache    = flag.Bool("nocache", false, "do not read or write the magic cache")
	reset      = flag.Bool("reset", false, "drop cached magics before searching")
	out        = flag.String("out", "", "output file (default: stdout)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if err := run(); err != nil {
		pprof.StopCPUProfile()
		log.Fatalf("[magicgen] %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *seed == 0 || *seed > 0xFFFFFFFF {
		return fmt.Errorf("seed must be a non-zero 32-bit value, got %d", *seed)
	}

	opts := magicgen.Options{
		Seed:     uint32(*seed),
		Attempts: *attempts,
		Workers:  *workers,
	}

	if !*noCache {
		store, err := openCache()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := prepareCache(store, opts.Seed); err != nil {
			return err
		}
		opts.Cache = store
	}

	table, err := magicgen.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := magicgen.Emit(w, table); err != nil {
		return err
	}
	if *out != "" {
		log.Printf("[magicgen] Wrote %s", *out)
	}
	return nil
}

func openCache() (*storage.Storage, error) {
	if *cacheDir != "" {
		return storage.Open(*cacheDir)
	}
	return storage.NewStorage()
}

// prepareCache drops cached magics when asked to, or when they were searched
// with a different seed, then records the current seed.
func prepareCache(store *storage.Storage, seed uint32) error {
	prev, found, err := store.LoadSeed()
	if err != nil {
		return err
	}

	if *reset || (found && prev != seed) {
		log.Printf("[magicgen] Resetting magic cache")
		if err := store.Reset(); err != nil {
			return err
		}
	}

	return store.SaveSeed(seed)
}
