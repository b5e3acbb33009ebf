// Where: internal/infra/ui/ui.go
// What: UI surface used by generator workflows.
// Why: Keep workflows independent of how status lines and messages are rendered.
package ui

import (
	"fmt"
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by workflows.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Status(verb, path string)
	Block(emoji, title string, rows []KeyValue)
}

// NewGeneratorUI returns a UserInterface for generate/destroy output.
func NewGeneratorUI(out io.Writer, emojiEnabled bool) UserInterface {
	return generatorUI{
		out:     out,
		console: NewWithEmoji(out, emojiEnabled),
	}
}

type generatorUI struct {
	out     io.Writer
	console *Console
}

func (g generatorUI) Info(msg string) {
	fmt.Fprintln(g.out, msg)
}

func (g generatorUI) Warn(msg string) {
	g.console.Warn(msg)
}

func (g generatorUI) Success(msg string) {
	g.console.Success(msg)
}

func (g generatorUI) Status(verb, path string) {
	g.console.Status(verb, path)
}

func (g generatorUI) Block(emoji, title string, rows []KeyValue) {
	g.console.BlockStart(emoji, title)
	for _, kv := range rows {
		g.console.Item(kv.Key, kv.Value)
	}
	g.console.BlockEnd()
}

// NewPlainUI returns a UserInterface that prints messages verbatim, for
// command-level errors and usage text.
func NewPlainUI(out io.Writer) UserInterface {
	return plainUI{
		out:     out,
		console: NewWithEmoji(out, false),
	}
}

type plainUI struct {
	out     io.Writer
	console *Console
}

func (p plainUI) Info(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Warn(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Success(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Status(verb, path string) {
	p.console.Status(verb, path)
}

func (p plainUI) Block(emoji, title string, rows []KeyValue) {
	p.console.BlockStart(emoji, title)
	for _, kv := range rows {
		p.console.Item(kv.Key, kv.Value)
	}
	p.console.BlockEnd()
}
