package tuning

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/tunesmith/line"
)

// ParseScale reads one degree per line. Blank lines and lines starting with
// "!" are skipped, and anything after the first field is a label.
func ParseScale(r io.Reader) ([]line.Line, error) {
	var res []line.Line
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "!") {
			continue
		}
		l, err := line.Parse(strings.Fields(text)[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		res = append(res, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scale: %w", err)
	}
	return res, nil
}

func ParseScaleString(s string) ([]line.Line, error) {
	return ParseScale(strings.NewReader(s))
}

var ErrScalaFormat = errors.New("malformed scala file")

// ParseScala reads a Scala .scl file: a description line (which may be
// empty), the number of degrees, then that many degrees. Lines starting
// with "!" are comments everywhere.
func ParseScala(r io.Reader) (string, []line.Line, error) {
	var (
		description string
		count       = -1
		seenHeader  bool
		res         []line.Line
	)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(text, "!") {
			continue
		}

		switch {
		case !seenHeader:
			description = text
			seenHeader = true
		case count < 0:
			fields := strings.Fields(text)
			if len(fields) == 0 {
				return "", nil, fmt.Errorf("%w: line %d: missing note count", ErrScalaFormat, lineNum)
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 {
				return "", nil, fmt.Errorf("%w: line %d: bad note count %q", ErrScalaFormat, lineNum, fields[0])
			}
			count = n
		case text == "":
			continue
		case len(res) < count:
			l, err := line.Parse(strings.Fields(text)[0])
			if err != nil {
				return "", nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			res = append(res, l)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("read scale: %w", err)
	}
	if count < 0 {
		return "", nil, fmt.Errorf("%w: missing note count", ErrScalaFormat)
	}
	if len(res) != count {
		return "", nil, fmt.Errorf("%w: expected %d notes, found %d", ErrScalaFormat, count, len(res))
	}
	return description, res, nil
}
