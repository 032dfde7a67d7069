package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/procure/backend/internal/infrastructure/config"
	"github.com/procure/backend/internal/infrastructure/logger"
	"github.com/procure/backend/internal/infrastructure/migration"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "", "migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	command, rest := args[0], args[1:]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	dir, err = resolveDir(dir)
	if err != nil {
		log.Fatal("resolve migrations directory", zap.Error(err))
	}

	// create and list work without a database
	switch command {
	case "create":
		if len(rest) == 0 {
			log.Fatal("usage: migrate create <name> [description]")
		}
		description := ""
		if len(rest) > 1 {
			description = rest[1]
		}
		pair, err := migration.CreateMigration(dir, rest[0], description)
		if err != nil {
			log.Fatal("create migration", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("version", pair.Version),
			zap.String("up", pair.UpPath),
			zap.String("down", pair.DownPath),
		)
		return

	case "list":
		names, err := migration.ListMigrations(dir)
		if err != nil {
			log.Fatal("list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("no migrations found", zap.String("dir", dir))
			return
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		log.Fatal("create migrator", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, log, command, rest); err != nil {
		log.Fatal(command, zap.Error(err))
	}
}

func run(m *migration.Migrator, log *zap.Logger, command string, args []string) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "migrate step <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args, "migrate goto <version>")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("no migrations applied")
		} else {
			log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return nil
	case "force":
		n, err := intArg(args, "migrate force <version>")
		if err != nil {
			return err
		}
		return m.Force(n)
	case "drop":
		if !hasFlag(args, "-confirm") && !hasFlag(args, "--confirm") {
			return fmt.Errorf("refusing to drop without -confirm")
		}
		return m.Drop()
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[0])
	}
	return n, nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// resolveDir locates the migrations directory, falling back to a path
// relative to the executable when not run from the repo root.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		dir = defaultMigrationsDir
		if _, err := os.Stat(dir); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsDir)
				if _, err := os.Stat(candidate); err == nil {
					dir = candidate
				}
			}
		}
	}
	return filepath.Abs(dir)
}

func usage() {
	fmt.Println(`Procurement schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to a specific version
  version               show current schema version
  force <version>       overwrite recorded version (repair only)
  drop -confirm         drop every database object
  create <name> [desc]  write a new up/down skeleton pair
  list                  list available migrations

Flags:
  -path string          migrations directory (default: ./migrations)
  -log-level string     debug, info, warn, error (default: info)

Database connection comes from config.toml or PROCURE_DATABASE_* variables.`)
}
