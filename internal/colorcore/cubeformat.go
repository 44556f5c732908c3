package colorcore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// section tracks which table a data row currently contributes to,
// following whichever LUT_*_SIZE directive was seen most recently.
type section int

const (
	sectionNone section = iota
	section1D
	section3D
)

// ParseCube parses Adobe/Iridas .cube text (spec.md §4.3, §6) into a
// LutTable. Line-oriented, whitespace-insensitive, comment lines start
// with '#'. DOMAIN_MIN/MAX and DOMAIN_1D/2D are consumed but ignored —
// the sampler always treats the domain as [0,1] (spec.md §9 open
// question).
func ParseCube(r io.Reader) (*LutTable, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		shaperDeclared, cubeDeclared   bool
		shaperSize, cubeSize           int
		shaperRows, cubeRows           [][3]float32
		active                        = sectionNone
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "LUT_1D_SIZE"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "LUT_1D_SIZE")))
			if err != nil {
				return nil, &LutParseError{Msg: "malformed LUT_1D_SIZE", Err: err}
			}
			shaperDeclared = true
			shaperSize = n
			active = section1D
			continue

		case strings.HasPrefix(line, "LUT_3D_SIZE"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "LUT_3D_SIZE")))
			if err != nil {
				return nil, &LutParseError{Msg: "malformed LUT_3D_SIZE", Err: err}
			}
			cubeDeclared = true
			cubeSize = n
			active = section3D
			continue

		case strings.HasPrefix(line, "TITLE"),
			strings.HasPrefix(line, "DOMAIN_MIN"),
			strings.HasPrefix(line, "DOMAIN_MAX"),
			strings.HasPrefix(line, "DOMAIN_1D"),
			strings.HasPrefix(line, "DOMAIN_2D"):
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		row, err := parseRow(fields)
		if err != nil {
			return nil, &LutParseError{Msg: "malformed number in data row", Err: err}
		}

		switch active {
		case section1D:
			shaperRows = append(shaperRows, row)
		case section3D:
			cubeRows = append(cubeRows, row)
		default:
			return nil, &LutParseError{Msg: "data row before any LUT_1D_SIZE/LUT_3D_SIZE directive"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LutParseError{Msg: "reading cube text", Err: err}
	}

	if !shaperDeclared && !cubeDeclared {
		if len(shaperRows)+len(cubeRows) > 0 {
			return nil, &LutParseError{Msg: "data rows present with no size directive"}
		}
		return nil, &LutParseError{Msg: "no LUT_1D_SIZE or LUT_3D_SIZE directive found"}
	}
	if shaperDeclared && len(shaperRows) != shaperSize {
		return nil, &LutParseError{Msg: fmt.Sprintf("LUT_1D_SIZE %d but got %d rows", shaperSize, len(shaperRows))}
	}
	if cubeDeclared && len(cubeRows) != cubeSize*cubeSize*cubeSize {
		return nil, &LutParseError{Msg: fmt.Sprintf("LUT_3D_SIZE %d but got %d rows (want %d)", cubeSize, len(cubeRows), cubeSize*cubeSize*cubeSize)}
	}

	return NewLutTable(shaperRows, cubeRows)
}

func parseRow(fields []string) ([3]float32, error) {
	var row [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return row, err
		}
		row[i] = float32(v)
	}
	return row, nil
}

// WriteCube serializes a LutTable to Adobe/Iridas .cube text with 10
// fractional digits per value (spec.md §6), so the file survives the
// f32 sampler's precision on read-back. title may be empty.
func WriteCube(w io.Writer, t *LutTable, title string) error {
	bw := bufio.NewWriter(w)

	if title != "" {
		if _, err := fmt.Fprintf(bw, "TITLE \"%s\"\n", title); err != nil {
			return err
		}
	}
	if t.ShaperSize() > 0 {
		if _, err := fmt.Fprintf(bw, "LUT_1D_SIZE %d\n", t.shaperSize); err != nil {
			return err
		}
		for _, row := range t.shaperTable {
			if _, err := fmt.Fprintf(bw, "%.10f %.10f %.10f\n", row[0], row[1], row[2]); err != nil {
				return err
			}
		}
	}
	if t.CubeSize() > 0 {
		if _, err := fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", t.cubeSize); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "DOMAIN_MIN 0 0 0\nDOMAIN_MAX 1 1 1\n"); err != nil {
			return err
		}
		for _, row := range t.cubeTable {
			if _, err := fmt.Fprintf(bw, "%.10f %.10f %.10f\n", row[0], row[1], row[2]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
