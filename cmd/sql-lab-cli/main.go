package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Wojteg799/SQL-Exercises-App/internal/console"
)

func main() {
	server := flag.String("server", "", "sql-lab server URL (default http://127.0.0.1:8080)")
	progress := flag.String("progress", "", "progress file path (default ~/.sql-lab/progress.json)")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flag.Parse()

	cfg := console.Config{
		ServerURL:    *server,
		ProgressPath: *progress,
		HTTPTimeout:  *timeout,
	}

	if err := console.Run(context.Background(), os.Stdin, os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
