package climax

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError describes a malformed label file line.
// The whole run aborts on the first malformed line so that a typo in the
// middle of a label file cannot silently drop slices.
type ParseError struct {
	// Line is the 1-based line number in the label file.
	Line int
	// Text is the offending line as read.
	Text string
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("label file line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFile reads an Audacity-style label file and returns the climax points
// it defines. See Parse for the line format.
func ParseFile(path string) ([]Point, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("open label file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads climax points from a label file. Each line is
//
//	<climax_seconds> <label_end_seconds> <type_char> <description...>
//
// delimited by tabs or spaces. The second column is the label end time that
// Audacity exports alongside the start time; it is ignored. Blank lines and
// lines starting with '#' are skipped. A malformed line yields a *ParseError
// carrying its line number.
func Parse(r io.Reader) ([]Point, error) {
	var points []Point

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		point, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Err: err}
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read label file: %w", err)
	}

	return points, nil
}

// parseLine parses a single non-empty label line into a Point.
func parseLine(line string) (Point, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Point{}, fmt.Errorf("want at least 3 fields, got %d", len(fields))
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("climax time: %w", err)
	}
	if seconds < 0 {
		return Point{}, fmt.Errorf("climax time %.2f is negative", seconds)
	}

	// fields[1] is the label end time, ignored.

	typ, err := ParseType(fields[2])
	if err != nil {
		return Point{}, err
	}

	return Point{
		Time:        seconds,
		Type:        typ,
		Description: strings.Join(fields[3:], " "),
	}, nil
}

// WriteLabels writes points in the label file format consumed by Parse.
// The second column repeats the climax time, matching an Audacity point label.
func WriteLabels(w io.Writer, points []Point) error {
	for _, p := range points {
		line := fmt.Sprintf("%.3f\t%.3f\t%s %s\n", p.Time, p.Time, p.Type, p.Description)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write label line: %w", err)
		}
	}
	return nil
}
