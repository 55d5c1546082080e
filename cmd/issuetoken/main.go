// Command issuetoken prints an API token accepted by the dispatch server.
// Usage: go run ./cmd/issuetoken -subject n8n-prod
package main

import (
	"flag"
	"fmt"
	"log"

	"narrabridge/internal/auth"
	"narrabridge/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	subject := flag.String("subject", "", "token subject, usually the calling workflow host")
	flag.Parse()
	if *subject == "" {
		flag.Usage()
		return fmt.Errorf("-subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	token, expiresAt, err := auth.NewTokenService(cfg.Auth).Issue(*subject)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}

	log.Printf("token for %q expires at %s", *subject, expiresAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(token)
	return nil
}
