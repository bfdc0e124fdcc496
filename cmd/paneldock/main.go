package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/paneldock/internal/config"
	"github.com/1broseidon/paneldock/internal/daemon"
	"github.com/1broseidon/paneldock/internal/ipc"
	"github.com/1broseidon/paneldock/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "state":
		os.Exit(runState(os.Args[2:]))
	case "dock":
		os.Exit(runDock(os.Args[2:]))
	case "undock":
		os.Exit(runUndock(os.Args[2:]))
	case "minimize":
		os.Exit(runMinimize(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "reset":
		os.Exit(runReset(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: paneldock <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the paneldock daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  state               Show the panel state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  dock [side]         Dock the panel (left, right, top; default side when omitted)")
	fmt.Fprintln(w, "  undock              Float the panel")
	fmt.Fprintln(w, "  minimize            Toggle minimized")
	fmt.Fprintln(w, "  move <x> <y>        Move the floating panel")
	fmt.Fprintln(w, "  resize <w> <h>      Resize the panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  reset               Clear persisted panel state")
	fmt.Fprintln(w, "  reload              Ask the daemon to re-read its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive dashboard")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneldock <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock daemon [--config PATH] [--headless]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the panel daemon in the foreground.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/paneldock/config.yaml)")
	headless := fs.Bool("headless", false, "Run without a window-system backend")
	interval := fs.Duration("reconcile-interval", 10*time.Second, "Viewport drift check period")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	runner, err := daemon.New(daemon.Options{
		ConfigPath:        *configPath,
		Headless:          *headless,
		ReconcileInterval: *interval,
	})
	if err != nil {
		log.Fatalf("Failed to start daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down paneldock daemon...")
		cancel()
	}()

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	state, err := client.GetState()
	if err != nil {
		fmt.Println("daemon_running: false")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("daemon_running: true")
	fmt.Printf("uptime_seconds: %d\n", state.UptimeSeconds)
	fmt.Printf("viewport:       %dx%d\n", state.ViewportWidth, state.ViewportHeight)
	return 0
}

func runState(args []string) int {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock state [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the panel's current state. Non-TTY output defaults to JSON.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output state as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "state takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	state, err := client.GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, *jsonOut)
}

// printState writes a human-readable block on a TTY and JSON otherwise,
// so pipelines get machine-friendly output without a flag.
func printState(state *ipc.StateData, forceJSON bool) int {
	if forceJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	mode := "floating"
	if state.Docked != "" {
		mode = "docked " + state.Docked
	}
	fmt.Printf("mode:      %s\n", mode)
	fmt.Printf("position:  %d, %d\n", state.X, state.Y)
	fmt.Printf("size:      %dx%d\n", state.Width, state.Height)
	fmt.Printf("minimized: %v\n", state.Minimized)
	fmt.Printf("viewport:  %dx%d\n", state.ViewportWidth, state.ViewportHeight)
	return 0
}

func runDock(args []string) int {
	fs := flag.NewFlagSet("dock", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock dock [left|right|top]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Dock the panel. Without a side, uses the configured default.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "dock takes at most one side argument")
		fs.Usage()
		return 2
	}

	side := fs.Arg(0)
	switch side {
	case "", "left", "right", "top":
	default:
		fmt.Fprintf(os.Stderr, "invalid dock side %q (expected left, right, or top)\n", side)
		return 2
	}

	client := ipc.NewClient()
	state, err := client.Dock(side)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, false)
}

func runUndock(args []string) int {
	if rejectArgs("undock", args) {
		return 2
	}
	client := ipc.NewClient()
	state, err := client.Undock()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, false)
}

func runMinimize(args []string) int {
	if rejectArgs("minimize", args) {
		return 2
	}
	client := ipc.NewClient()
	state, err := client.ToggleMinimize()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, false)
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock move <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move the floating panel to an absolute position. Off-screen targets")
		fmt.Fprintln(os.Stderr, "dock the panel to the configured default side.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	x, errX := strconv.Atoi(fs.Arg(0))
	y, errY := strconv.Atoi(fs.Arg(1))
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "x and y must be integers")
		return 2
	}

	client := ipc.NewClient()
	state, err := client.Move(x, y)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, false)
}

func runResize(args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock resize <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resize the panel. Dimensions are clamped to the allowed range;")
		fmt.Fprintln(os.Stderr, "ignored while the panel is docked or minimized.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	w, errW := strconv.Atoi(fs.Arg(0))
	h, errH := strconv.Atoi(fs.Arg(1))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		fmt.Fprintln(os.Stderr, "width and height must be positive integers")
		return 2
	}

	client := ipc.NewClient()
	state, err := client.Resize(w, h)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printState(state, false)
}

func runReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneldock reset [--yes]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Clear the persisted panel state. Defaults apply on the next daemon start.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reset takes no arguments")
		fs.Usage()
		return 2
	}

	if !*yes && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Reset panel state? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Println("aborted")
			return 1
		}
	}

	client := ipc.NewClient()
	if err := client.Reset(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("panel state cleared")
	return 0
}

func runReload(args []string) int {
	if rejectArgs("reload", args) {
		return 2
	}
	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reload requested")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  paneldock config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  paneldock config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/paneldock/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/paneldock/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		if *printDefaults {
			cfg = config.Default()
		} else if *path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := cfg.Dump()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(out)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if rejectArgs("tui", args) {
		return 2
	}
	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func rejectArgs(name string, args []string) bool {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintf(os.Stdout, "Usage: paneldock %s\n", name)
		// Usage printed; treat as handled without error.
		os.Exit(0)
	}
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		return true
	}
	return false
}
