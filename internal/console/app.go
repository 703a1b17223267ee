package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Wojteg799/SQL-Exercises-App/pkg/client"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultHTTPTimeout = 30 * time.Second
)

// Config configures the interactive console.
type Config struct {
	ServerURL    string
	ProgressPath string
	HTTPTimeout  time.Duration
}

// Run drives the interactive console loop: load the catalog once, then
// read commands until exit or EOF.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}

	progressPath := cfg.ProgressPath
	if progressPath == "" {
		path, err := DefaultProgressPath()
		if err != nil {
			return err
		}
		progressPath = path
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	api := client.NewClient(serverURL, client.WithHTTPClient(&http.Client{Timeout: timeout}))
	progress := LoadProgress(progressPath)
	controller := NewController(api, progress, out)

	fmt.Fprintf(out, "sql-lab console\nserver=%s\n\n", serverURL)
	controller.LoadExercises(ctx)
	fmt.Fprint(out, controller.Menu.Render())
	printHelp(out)

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "list":
			fmt.Fprint(out, controller.Menu.Render())
		case "toggle":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: toggle <folder>")
				continue
			}
			controller.ToggleFolder(args[1])
			fmt.Fprint(out, controller.Menu.Render())
		case "open":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: open <folder> <task>")
				continue
			}
			controller.SelectTask(ctx, args[1], args[2])
			fmt.Fprint(out, controller.Description)
		case "task":
			fmt.Fprint(out, controller.Description)
		case "schema":
			fmt.Fprint(out, controller.Schema)
		case "sql":
			query, runNow, err := readQuery(reader, out)
			if err != nil {
				return err
			}
			controller.QueryBuf = query
			if runNow {
				controller.RunQuery(ctx, controller.QueryBuf)
				printResults(out, controller)
			}
		case "run":
			controller.RunQuery(ctx, controller.QueryBuf)
			printResults(out, controller)
		case "verify":
			controller.VerifyTask(ctx, controller.QueryBuf)
		case "progress":
			fmt.Fprintf(out, "%d task(s) completed\n", progress.CompletedCount())
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", command)
		}
	}
}

// readQuery collects query lines until a blank line or a lone ";".
// A line ending in ";;" submits and runs the query immediately, the
// console equivalent of the editor's Ctrl+Enter accelerator.
func readQuery(reader *bufio.Reader, out io.Writer) (query string, runNow bool, err error) {
	fmt.Fprintln(out, "enter SQL (blank line to finish, ';;' to finish and run):")

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", false, err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == ";" {
			break
		}
		if strings.HasSuffix(trimmed, ";;") {
			lines = append(lines, strings.TrimSuffix(trimmed, ";;"))
			return strings.Join(lines, "\n"), true, nil
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n"), false, nil
}

func printResults(out io.Writer, controller *Controller) {
	fmt.Fprint(out, controller.Results)
	if controller.Counter != "" {
		fmt.Fprintln(out, controller.Counter)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `
commands:
  list                 show the exercise menu
  toggle <folder>      expand/collapse a folder
  open <folder> <task> select a task
  task                 show the current task description
  schema               show the sandbox schema
  sql                  enter a query (';;' ends input and runs it)
  run                  run the entered query
  verify               check the entered query against the solution
  progress             show completed task count
  help                 show this help
  exit                 quit
`)
}
