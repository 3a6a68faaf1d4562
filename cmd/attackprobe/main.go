// Command attackprobe loads FEN positions and prints each board together
// with the squares attacked by the requested side.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/bitmagic/internal/board"
)

// fenList collects repeated -fen flags.
type fenList []string

func (f *fenList) String() string { return strings.Join(*f, ", ") }

func (f *fenList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

var (
	fens       fenList
	fenFile    = flag.String("file", "", "read FEN positions from file, one per line")
	side       = flag.String("side", "both", "attacking side: white, black or both")
	workers    = flag.Int("workers", 4, "positions evaluated concurrently")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Var(&fens, "fen", "FEN position to probe (repeatable, default: start position)")
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

	sides, err := parseSide(*side)
	if err != nil {
		log.Fatalf("[probe] %v", err)
	}

	if *fenFile != "" {
		lines, err := readFENFile(*fenFile)
		if err != nil {
			log.Fatalf("[probe] %v", err)
		}
		fens = append(fens, lines...)
	}
	if len(fens) == 0 {
		fens = fenList{board.StartFEN}
	}

	reports, err := probe(context.Background(), fens, sides, *workers)
	if err != nil {
		log.Printf("[probe] %v", err)
	}
	for _, r := range reports {
		if r != "" {
			fmt.Print(r)
		}
	}
	if err != nil {
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func parseSide(s string) ([]board.Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return []board.Color{board.White}, nil
	case "black", "b":
		return []board.Color{board.Black}, nil
	case "both", "":
		return []board.Color{board.White, board.Black}, nil
	}
	return nil, fmt.Errorf("unknown side %q", s)
}

func readFENFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// probe evaluates every FEN against one shared set of attack tables. Reports
// keep input order; a position that fails to parse leaves an empty report
// and the first such error is returned.
func probe(ctx context.Context, fens []string, sides []board.Color, workers int) ([]string, error) {
	tables := board.DefaultTables()
	reports := make([]string, len(fens))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	errs := make([]error, len(fens))
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos, err := board.ParseFEN(tables, fen)
			if err != nil {
				errs[i] = fmt.Errorf("position %d: %w", i+1, err)
				return nil
			}
			reports[i] = report(i+1, fen, pos, sides)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	for _, err := range errs {
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func report(n int, fen string, pos *board.Position, sides []board.Color) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Position %d: %s\n\n", n, fen)
	sb.WriteString(pos.String())

	for _, c := range sides {
		attacked := pos.AttackedSquares(c)
		fmt.Fprintf(&sb, "\nSquares attacked by %s (%d):\n", c, attacked.CountBits())
		sb.WriteString(attacked.String())

		king := pos.Pieces(c.Other(), board.King)
		if king != board.Empty {
			ksq, _ := king.LSBIndex()
			if attackers := pos.AttackersTo(ksq, c); attackers != board.Empty {
				fmt.Fprintf(&sb, "%s king on %s is in check from %v\n", c.Other(), ksq, attackers.Squares())
			}
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
