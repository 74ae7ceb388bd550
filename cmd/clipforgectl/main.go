package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/clipforge/clipforge/internal/ctl"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "server base URL")
	flag.Parse()

	app := ctl.NewApp(ctl.NewClient(*addr), os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
