package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/automoto/whackamole/leaderboard"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	dbPath := flag.String("db", "leaderboard.db", "SQLite database path")
	flag.Parse()

	store, err := leaderboard.OpenStore(*dbPath)
	if err != nil {
		log.Fatalf("[leaderboard] open store: %v", err)
	}
	defer store.Close()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[leaderboard] starting on %s (db=%s)", addr, *dbPath)
	if err := http.ListenAndServe(addr, leaderboard.NewMux(store)); err != nil {
		log.Fatalf("[leaderboard] fatal: %v", err)
	}
}
