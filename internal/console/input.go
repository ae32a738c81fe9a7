package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrInput marks a token that could not be parsed as the number the
// prompt asked for.
var ErrInput = errors.New("invalid input")

// tokenReader reads whitespace-delimited tokens. A prompt that asks for
// "name and price" consumes two tokens, wherever the line breaks fall, so
// names cannot contain spaces.
type tokenReader struct {
	sc *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

// next returns the next token. Running out of input is an error: every
// caller is in the middle of a prompt.
func (t *tokenReader) next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
}

func (t *tokenReader) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: expected an integer, got %q", ErrInput, tok)
	}
	return n, nil
}

func (t *tokenReader) nextID() (int64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: expected an id, got %q", ErrInput, tok)
	}
	return id, nil
}

// nextFloat accepts plain decimal numbers only, optionally with an
// exponent ("9.99", "-2", "1.5e3"). strconv.ParseFloat on its own would
// also take "0x1p3", "1_000", "NaN" and "Inf"; none of those is a price.
func (t *tokenReader) nextFloat() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	if strings.TrimLeft(tok, "0123456789.+-eE") != "" {
		return 0, fmt.Errorf("%w: expected a number, got %q", ErrInput, tok)
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: expected a number, got %q", ErrInput, tok)
	}
	return f, nil
}
