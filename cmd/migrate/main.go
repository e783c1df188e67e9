package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/avoronkov/stridewell/internal/config"
	"github.com/avoronkov/stridewell/internal/dbmigrate"
)

func main() {
	command, err := parseCommand(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatal(err)
	}
	if warning != "" {
		log.Printf("WARN migrate: %s", warning)
	}

	log.Printf("migrate: running %s against %s", command, source)
	if err := dbmigrate.Run(command, dbURL, dbmigrate.DefaultMigrationsDir); err != nil {
		log.Fatal(err)
	}
	log.Printf("migrate: %s done", command)
}

func parseCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: migrate <up|status|down>")
	}
	switch args[0] {
	case "up", "status", "down":
		return args[0], nil
	}
	return "", fmt.Errorf("unsupported command %q (allowed: up, status, down)", args[0])
}
