package internal

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogDir returns ~/.meshedges/logs
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".meshedges", "logs"), nil
}

// SetupLogging sends log output to a per-run file named after the
// subcommand and its input. With verbose set, output is also copied to stderr.
func SetupLogging(subcommand, input string, verbose bool) error {
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	logDir, err := LogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName(subcommand, input, time.Now()))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	if verbose {
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	} else {
		log.SetOutput(logFile)
	}
	log.Printf("Log file: %s", logPath)
	return nil
}

func logFileName(subcommand, input string, now time.Time) string {
	name := sanitizeName(strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)))
	hash := sha1.Sum([]byte(input))
	suffix := hex.EncodeToString(hash[:])[:8]
	return fmt.Sprintf("meshedges-%s-%s-%s-%s.log", subcommand, name, now.Format("20060102-150405"), suffix)
}

// sanitizeName replaces characters that are unsafe in file names with underscores
func sanitizeName(name string) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "mesh"
	}
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
