package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidInput marks a parser rejection. Ask re-prompts on it.
var ErrInvalidInput = errors.New("invalid input")

// ErrClosed is returned when input ends before a question is answered.
var ErrClosed = errors.New("input closed")

// InputError is a parser rejection with a message meant for the user.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrInvalidInput) true for every InputError.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid returns an InputError with a formatted message.
func Invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// Parser turns a raw answer into a typed value or rejects it with an
// InputError.
type Parser[T any] func(raw string) (T, error)

// Prompter reads answers line by line and writes questions and notices.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line writes question and returns the next input line without its newline.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		fmt.Fprintln(p.out)
		return "", ErrClosed
	}
	return p.in.Text(), nil
}

// Println writes a line of output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Ask asks question until parse accepts the answer. Rejections are reported
// to the user and the question is repeated; any other error is returned.
func Ask[T any](p *Prompter, question string, parse Parser[T]) (T, error) {
	for {
		raw, err := p.Line(question)
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(strings.TrimSpace(raw))
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			var zero T
			return zero, err
		}
		p.Printf("Invalid input: %v\n", err)
	}
}
