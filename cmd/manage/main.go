package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/adcraft-app/adcraft-backend/config"
	"github.com/adcraft-app/adcraft-backend/internal/db"
	"github.com/adcraft-app/adcraft-backend/internal/projects/repository"
	"github.com/adcraft-app/adcraft-backend/internal/telemetry"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

const usage = `usage:
  manage migrate <up|down>
  manage create-project <firebase_uid> <name>`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg := config.Read()
	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.SetupLogger(cfg.App.LogFormat, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate(ctx, cfg, os.Args[2:])
	case "create-project":
		err = runCreateProject(ctx, cfg, os.Args[2:])
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func dbOptions(cfg *config.Config) db.Options {
	return db.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		MaxConns: 2,
		PingTO:   cfg.Database.Timeout,
	}
}

func runMigrate(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: manage migrate <up|down>")
	}

	conn, err := db.Open(ctx, dbOptions(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn, cfg.Database.Driver, args[0]); err != nil {
		return err
	}
	log.Printf("migrations %s complete", args[0])
	return nil
}

// runCreateProject seeds a project for an existing user. The user must have
// signed in at least once so the firebase uid is provisioned.
func runCreateProject(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: manage create-project <firebase_uid> <name>")
	}
	fuid := strings.TrimSpace(args[0])
	name := strings.TrimSpace(strings.Join(args[1:], " "))

	conn, err := db.Open(ctx, dbOptions(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	u, err := users.NewRepo(conn).GetByFirebaseUID(ctx, fuid)
	if err != nil {
		return fmt.Errorf("lookup user %s: %w", fuid, err)
	}

	p, err := repository.NewProjectRepository(conn).Create(ctx, u.ID, name)
	if err != nil {
		return err
	}
	fmt.Println(p.ID)
	return nil
}
