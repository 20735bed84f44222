// Package console implements a line-oriented command interpreter over an
// attribute dispatcher.
//
// Each input line is split shell-style, so quoted text keeps its spaces:
//
//	text "  hello  "
//	icons clk rad vol5
//	get icons
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"github.com/sagostin/shuttle-vfd/pkg/attr"
)

// Prompt is written before each line when prompting is enabled.
const Prompt = "vfd> "

var errQuit = errors.New("quit")

// shortcuts map a command word to the attribute it writes.
var shortcuts = map[string]string{
	"text":  attr.Text,
	"icons": attr.Icons,
	"mode":  attr.Mode,
	"style": attr.TextStyle,
}

// Console reads commands from in and writes replies to out.
type Console struct {
	d      *attr.Dispatcher
	in     io.Reader
	out    io.Writer
	prompt bool
}

// New creates a console for d.
func New(d *attr.Dispatcher, in io.Reader, out io.Writer) *Console {
	return &Console{d: d, in: in, out: out}
}

// SetPrompt enables or disables the interactive prompt.
func (c *Console) SetPrompt(on bool) {
	c.prompt = on
}

// Run processes lines until EOF or quit. Command failures are reported to
// out and do not stop the loop; only read and write errors are returned.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for {
		if c.prompt {
			if _, err := io.WriteString(c.out, Prompt); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		reply, err := c.Exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			reply = "error: " + err.Error() + "\n"
		}
		if _, err := io.WriteString(c.out, reply); err != nil {
			return err
		}
	}
}

// Exec runs a single command line and returns its reply.
func (c *Console) Exec(line string) (string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	if len(args) == 0 {
		return "", nil
	}

	cmd, args := args[0], args[1:]

	if name, ok := shortcuts[cmd]; ok {
		return c.store(name, args)
	}

	switch cmd {
	case "get":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: get <attribute>")
		}
		return c.d.Show(args[0])

	case "set":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: set <attribute> [value...]")
		}
		return c.store(args[0], args[1:])

	case "list", "attrs":
		return strings.Join(attr.Names(), "\n") + "\n", nil

	case "help":
		return help, nil

	case "quit", "exit":
		return "", errQuit

	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *Console) store(name string, args []string) (string, error) {
	if err := c.d.Store(name, []byte(strings.Join(args, " "))); err != nil {
		return "", err
	}
	return "ok\n", nil
}

const help = `commands:
  text [message]        set the text line
  icons <tokens>        toggle icons (clk rad vol5 all clear = ...)
  mode <text|clock>     switch display mode
  style <left|right|center>
  get <attribute>       show an attribute
  set <attribute> [value...]
  list                  list attributes
  quit
`
