package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 0, "Port to serve on (default: RAYTRACER_PORT or 8080)")
	scenesDir := flag.String("scenes", "scenes", "Directory of XML scenes to offer")
	envFile := flag.String("env", ".env", "Environment file with RAYTRACER_* settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	// Create and start web server
	webServer := server.NewServer(cfg, *scenesDir)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
