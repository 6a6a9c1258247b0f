package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: modeshift daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: modeshift daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "modes":
		os.Exit(runModes(os.Args[2:]))
	case "fullscreen":
		os.Exit(runFullscreen(os.Args[2:]))
	case "resizable":
		os.Exit(runFlag(os.Args[2:], "resizable"))
	case "decorated":
		os.Exit(runFlag(os.Args[2:], "decorated"))
	case "maximize":
		os.Exit(runFlag(os.Args[2:], "maximize"))
	case "simple":
		os.Exit(runFlag(os.Args[2:], "simple"))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modeshift <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the modeshift daemon (foreground)")
	fmt.Fprintln(w, "  status              Show a window's display-mode state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  monitors            List active monitors")
	fmt.Fprintln(w, "  modes               List video modes of a monitor")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  fullscreen          Set a window's fullscreen mode")
	fmt.Fprintln(w, "  resizable           Set a window's resizable attribute (on|off)")
	fmt.Fprintln(w, "  decorated           Set a window's decorations (on|off)")
	fmt.Fprintln(w, "  maximize            Set a window's maximized state (on|off)")
	fmt.Fprintln(w, "  simple              Toggle non-native fullscreen (on|off)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  pick                Interactively pick a monitor and video mode")
	fmt.Fprintln(w, "  mcp                 Run the MCP server on stdio")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'modeshift <command> -h' for command options.")
}
