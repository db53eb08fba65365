package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/folioworks/folio/pkg/folio/api"
	"github.com/folioworks/folio/pkg/folio/config"
)

const usage = `Folio Admin CLI

Operational tooling for a folio deployment.

USAGE:
  admin <command> [options]

COMMANDS:
  token     Issue a dashboard bearer token for an owner
  ping      Verify database connectivity

ENVIRONMENT VARIABLES:
  JWT_SECRET        HMAC secret used to sign dashboard tokens
  DATABASE_URL      PostgreSQL connection string (for ping)
  DB_SCHEMA         PostgreSQL schema name (default: folio)

  Configuration can be loaded from a .env file in the current directory.

EXAMPLES:
  # Issue a token valid for 24 hours
  admin token --owner-id=550e8400-e29b-41d4-a716-446655440000 --ttl=24h

  # Issue a token that never expires (local development only)
  admin token --owner-id=550e8400-e29b-41d4-a716-446655440000 --ttl=0

  # Check the configured database is reachable
  admin ping
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "token":
		runToken(os.Args[2:])
	case "ping":
		runPing()
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	ownerArg := fs.String("owner-id", "", "Owner UUID the token is issued for (required)")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime, 0 for no expiry")
	fs.Parse(args)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ownerID, err := uuid.Parse(*ownerArg)
	if err != nil {
		log.Fatalf("Invalid --owner-id: %v", err)
	}

	auth := api.NewAuth([]byte(secret))
	token, err := auth.IssueToken(ownerID, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}

func runPing() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" || databaseURL == "memory" {
		fmt.Println("Database: memory (nothing to ping)")
		return
	}

	schema := os.Getenv("DB_SCHEMA")
	if schema == "" {
		schema = "folio"
	}

	if err := config.PingPostgres(databaseURL, schema); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	fmt.Printf("Database OK (schema: %s)\n", schema)
}
