package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-blackhole-raytracer/pkg/store"
	"github.com/df07/go-blackhole-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	dbPath := flag.String("db", "presets.db", "Preset database path (empty disables persistence)")
	flag.Parse()

	var presets *store.Store
	if *dbPath != "" {
		var err error
		presets, err = store.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open preset store", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer presets.Close()
	}

	webServer := server.NewServer(*port, presets)

	slog.Info("Black Hole Raytracer Web Server", "port", *port)

	if err := webServer.Start(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
