package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	commentPrefix = "#"

	scannerInitialBufferSize = 4 << 10
	scannerMaxLineSize       = 1 << 20
)

// Parse reads a whole trace. The first malformed line stops parsing and is
// reported with its line number.
func Parse(r io.Reader) ([]Op, error) {
	// BOMOverride switches to UTF-16 when the input starts with one of its
	// byte order marks and strips a UTF-8 BOM otherwise.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, scannerInitialBufferSize), scannerMaxLineSize)

	var ops []Op
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, commentPrefix); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		op.Line = lineNo
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning trace: %w", err)
	}
	return ops, nil
}

func parseOp(fields []string) (Op, error) {
	kind, ok := kindsByName[strings.ToLower(fields[0])]
	if !ok {
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, fields[0])
	}
	op := Op{Kind: kind}

	want := 3
	switch kind {
	case KindFree:
		want = 2
	case KindReset:
		want = 1
	}
	if len(fields) != want {
		return Op{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, kind, want-1, len(fields)-1)
	}
	if want > 1 {
		op.ID = fields[1]
	}

	switch kind {
	case KindAlloc, KindRealloc:
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return Op{}, fmt.Errorf("%w: %s size %q: %w", ErrSyntax, kind, fields[2], err)
		}
		op.Size = n
	case KindWrite:
		v, err := strconv.ParseUint(fields[2], 0, 8)
		if err != nil {
			return Op{}, fmt.Errorf("%w: write value %q: %w", ErrSyntax, fields[2], err)
		}
		op.Value = byte(v)
	}
	return op, nil
}
