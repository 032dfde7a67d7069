package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// versionLayout orders migration files lexicographically by creation time.
const versionLayout = "20060102150405"

// FilePair is an up/down migration skeleton written to disk.
type FilePair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair into dir. The name is
// lowercased and reduced to [a-z0-9_] so the files sort and load cleanly.
func CreateMigration(dir, name, description string) (*FilePair, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	pair := &FilePair{
		Version: now.Format(versionLayout),
		Name:    sanitizeName(name),
	}
	base := pair.Version + "_" + pair.Name
	pair.UpPath = filepath.Join(dir, base+".up.sql")
	pair.DownPath = filepath.Join(dir, base+".down.sql")

	header := func(direction string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "-- %s (%s)\n", name, direction)
		fmt.Fprintf(&b, "-- created %s\n", now.Format(time.RFC3339))
		if description != "" {
			fmt.Fprintf(&b, "-- %s\n", description)
		}
		b.WriteString("\n")
		return b.String()
	}

	if err := os.WriteFile(pair.UpPath, []byte(header("up")), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", pair.UpPath, err)
	}
	if err := os.WriteFile(pair.DownPath, []byte(header("down")), 0o644); err != nil {
		_ = os.Remove(pair.UpPath)
		return nil, fmt.Errorf("write %s: %w", pair.DownPath, err)
	}
	return pair, nil
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the up migrations in dir,
// in file order. A missing directory is treated as empty.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}
