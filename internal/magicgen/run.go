package magicgen

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/bitmagic/internal/board"
	"github.com/hailam/bitmagic/internal/storage"
)

// Cache remembers magics between runs so an interrupted search can resume.
// *storage.Storage satisfies it.
type Cache interface {
	LoadMagic(slider board.Slider, sq board.Square) (*storage.MagicRecord, error)
	SaveMagic(rec *storage.MagicRecord) error
}

// Options configures a full search.
type Options struct {
	Seed     uint32
	Attempts int // per square; <= 0 selects DefaultAttempts
	Workers  int // > 1 searches squares concurrently, each with its own seed
	Cache    Cache
}

// Table holds one magic per square for each slider.
type Table struct {
	Bishop [64]uint64
	Rook   [64]uint64
}

// Set stores magic for slider s on sq.
func (t *Table) Set(s board.Slider, sq board.Square, magic uint64) {
	if s == board.Diagonal {
		t.Bishop[sq] = magic
	} else {
		t.Rook[sq] = magic
	}
}

// Get returns the magic for slider s on sq.
func (t *Table) Get(s board.Slider, sq board.Square) uint64 {
	if s == board.Diagonal {
		return t.Bishop[sq]
	}
	return t.Rook[sq]
}

// BakedTable returns the magics the board package is compiled with.
func BakedTable() *Table {
	t := &Table{}
	for _, s := range []board.Slider{board.Diagonal, board.Orthogonal} {
		for sq := board.A8; sq <= board.H1; sq++ {
			t.Set(s, sq, s.Magic(sq))
		}
	}
	return t
}

type job struct {
	slider board.Slider
	square board.Square
}

// jobs lists every square for rooks, then bishops. A single-worker run
// searches in this order with one shared generator.
func jobs() []job {
	out := make([]job, 0, 128)
	for _, s := range []board.Slider{board.Orthogonal, board.Diagonal} {
		for sq := board.A8; sq <= board.H1; sq++ {
			out = append(out, job{s, sq})
		}
	}
	return out
}

// Run finds a magic for every square of both sliders. Cached magics are
// verified before use; a cached value that fails verification is searched
// again.
func Run(ctx context.Context, opts Options) (*Table, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	table := &Table{}
	all := jobs()

	if opts.Workers <= 1 {
		f := NewFinder(seed, opts.Attempts)
		for _, j := range all {
			if err := solve(ctx, f, opts.Cache, table, j); err != nil {
				return nil, err
			}
		}
		return table, nil
	}

	// Each job writes a distinct slot of table, so no lock is needed.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, j := range all {
		i, j := i, j
		g.Go(func() error {
			f := NewFinder(deriveSeed(seed, i), opts.Attempts)
			return solve(ctx, f, opts.Cache, table, j)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return table, nil
}

func solve(ctx context.Context, f *Finder, cache Cache, table *Table, j job) error {
	if cache != nil {
		rec, err := cache.LoadMagic(j.slider, j.square)
		if err != nil {
			return fmt.Errorf("loading cached %s magic for %s: %w", j.slider, j.square, err)
		}
		if rec != nil {
			if board.CheckMagic(j.slider, j.square, j.slider.RelevanceMask(j.square), rec.Magic) {
				table.Set(j.slider, j.square, rec.Magic)
				return nil
			}
			log.Printf("[magicgen] Cached %s magic for %s is invalid, searching again", j.slider, j.square)
		}
	}

	res, err := f.Find(ctx, j.slider, j.square)
	if err != nil {
		return err
	}
	log.Printf("[magicgen] %s %s: 0x%016X (%d bits, %d attempts)", res.Slider, res.Square, res.Magic, res.Bits, res.Attempts)
	table.Set(res.Slider, res.Square, res.Magic)

	if cache != nil {
		err := cache.SaveMagic(&storage.MagicRecord{
			Slider:   res.Slider,
			Square:   res.Square,
			Magic:    res.Magic,
			Bits:     res.Bits,
			Attempts: res.Attempts,
		})
		if err != nil {
			return fmt.Errorf("caching %s magic for %s: %w", res.Slider, res.Square, err)
		}
	}

	return nil
}
