package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	host := flag.String("host", "", "Interface to bind (empty for all)")
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)
	webServer.SetHost(*host)

	log.Printf("Path Tracer Web Server")
	for _, route := range webServer.Routes() {
		log.Printf("  %-18s %s", route.Path, route.Description)
	}
	log.Printf("Try http://%s/api/render?scene=default&width=400&samples=50", webServer.Addr())

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
