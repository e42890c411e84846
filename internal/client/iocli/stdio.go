package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх произвольных потоков (по умолчанию stdin/stdout/stderr)
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	// fd терминала для скрытого ввода пароля, -1 если вход не терминал
	fd int
}

// NewStdio создает IO на стандартных потоках процесса
func NewStdio() IO {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Stdio{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
		fd:     fd,
	}
}

// New создает IO на переданных потоках. Пароль читается как обычная строка.
func New(in io.Reader, out, errOut io.Writer) IO {
	return &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		fd:     -1,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Alert выводит уведомление в stderr
func (s *Stdio) Alert(message string) {
	_, _ = fmt.Fprintf(s.errOut, "! %s\n", message)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	input, err := s.ReadText(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadText отрезает только завершающий "\r\n", пробелы сохраняются.
// Последняя строка без перевода строки считается полноценным вводом.
func (s *Stdio) ReadText(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.fd < 0 {
		// Не терминал (pipe, тесты): читаем строку как есть, без эха не обойтись
		return s.ReadText(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(s.fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
