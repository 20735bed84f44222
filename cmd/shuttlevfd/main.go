// shuttlevfd is a command-line tool for the Shuttle XPC front-panel VFD.
//
// Usage:
//
//	shuttlevfd [options] <command> [arguments]
//
// Commands:
//
//	list                     List attached displays
//	text <message>           Show a line of text
//	icons <tokens>           Toggle icons (clk rad vol5 all clear = ...)
//	mode <text|clock>        Switch display mode
//	style <l|r|c> [message]  Show text with the given alignment
//	clear                    Clear text and icons
//	clock                    Show the controller's clock
//	raw <hex>                Send one raw 8-byte frame
//	shell                    Interactive console on stdin
//	serve                    Share the display over a Unix socket
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	transport  = flag.String("transport", "", "Override the transport (usb, serial, dump)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [arguments]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  list                     List attached displays")
		fmt.Fprintln(os.Stderr, "  text <message>           Show a line of text")
		fmt.Fprintln(os.Stderr, "  icons <tokens>           Toggle icons (clk rad vol5 all clear = ...)")
		fmt.Fprintln(os.Stderr, "  mode <text|clock>        Switch display mode")
		fmt.Fprintln(os.Stderr, "  style <l|r|c> [message]  Show text with the given alignment")
		fmt.Fprintln(os.Stderr, "  clear                    Clear text and icons")
		fmt.Fprintln(os.Stderr, "  clock                    Show the controller's clock")
		fmt.Fprintln(os.Stderr, "  raw <hex>                Send one raw 8-byte frame (e.g. \"11 01\")")
		fmt.Fprintln(os.Stderr, "  shell                    Interactive console on stdin")
		fmt.Fprintln(os.Stderr, "  serve                    Share the display over a Unix socket")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := strings.Join(flag.Args()[1:], " ")

	switch cmd {
	case "list":
		err = cmdList(cfg)

	case "text":
		err = cmdText(cfg, rest)

	case "icons":
		if flag.NArg() < 2 {
			usage("icons <tokens>")
		}
		err = cmdIcons(cfg, rest)

	case "mode":
		if flag.NArg() != 2 {
			usage("mode <text|clock>")
		}
		err = cmdMode(cfg, flag.Arg(1))

	case "style":
		if flag.NArg() < 2 {
			usage("style <left|right|center> [message]")
		}
		err = cmdStyle(cfg, flag.Arg(1), strings.Join(flag.Args()[2:], " "))

	case "clear":
		err = cmdClear(cfg)

	case "clock":
		err = cmdMode(cfg, "clock")

	case "raw":
		if flag.NArg() < 2 {
			usage("raw <hex bytes>")
		}
		err = cmdRaw(cfg, rest)

	case "shell":
		err = cmdShell(cfg)

	case "serve":
		err = cmdServe(cfg)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(args string) {
	fmt.Fprintf(os.Stderr, "Usage: shuttlevfd %s\n", args)
	os.Exit(1)
}
