package magicgen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"

	"github.com/hailam/bitmagic/internal/board"
)

// Emit writes t as the board package's magic_numbers.go, together with the
// relevance masks and bit counts the magics were searched against.
func Emit(w io.Writer, t *Table) error {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by magicgen. DO NOT EDIT.\n\npackage board\n\n")

	var bishopMasks, rookMasks [64]uint64
	var bishopBits, rookBits [64]uint64
	for sq := board.A8; sq <= board.H1; sq++ {
		bm := board.Diagonal.RelevanceMask(sq)
		rm := board.Orthogonal.RelevanceMask(sq)
		bishopMasks[sq], rookMasks[sq] = uint64(bm), uint64(rm)
		bishopBits[sq], rookBits[sq] = uint64(bm.CountBits()), uint64(rm.CountBits())
	}

	buf.WriteString("// Relevant occupancy masks, indexed by square.\n")
	writeArray(&buf, "bishopRelevanceMasks", "Bitboard", bishopMasks[:], hexCell, 4)
	buf.WriteString("\n")
	writeArray(&buf, "rookRelevanceMasks", "Bitboard", rookMasks[:], hexCell, 4)
	buf.WriteString("\n")

	buf.WriteString("// Relevant bit counts, indexed by square.\n")
	writeArray(&buf, "bishopRelevantBits", "uint8", bishopBits[:], decCell, 8)
	buf.WriteString("\n")
	writeArray(&buf, "rookRelevantBits", "uint8", rookBits[:], decCell, 8)
	buf.WriteString("\n")

	buf.WriteString("// Magic multipliers, indexed by square.\n")
	writeArray(&buf, "bishopMagicNumbers", "uint64", t.Bishop[:], hexCell, 4)
	buf.WriteString("\n")
	writeArray(&buf, "rookMagicNumbers", "uint64", t.Rook[:], hexCell, 4)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated source: %w", err)
	}

	_, err = w.Write(src)
	return err
}

func hexCell(v uint64) string { return fmt.Sprintf("0x%016X", v) }
func decCell(v uint64) string { return fmt.Sprint(v) }

func writeArray(buf *bytes.Buffer, name, typ string, vals []uint64, cell func(uint64) string, perLine int) {
	fmt.Fprintf(buf, "var %s = [64]%s{\n", name, typ)
	for i := 0; i < len(vals); i += perLine {
		cells := make([]string, 0, perLine)
		for _, v := range vals[i : i+perLine] {
			cells = append(cells, cell(v)+",")
		}
		buf.WriteString("\t" + strings.Join(cells, " ") + "\n")
	}
	buf.WriteString("}\n")
}
