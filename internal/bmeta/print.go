// Package bmeta выводит сведения о сборке при старте сервиса.
package bmeta

import (
	"fmt"
	"io"
	"os"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Meta версия, дата и коммит сборки.
type Meta struct {
	Version string
	Date    string
	Commit  string
}

// Print распечатывает сведения о сборке в stdout.
func Print(meta Meta) {
	Fprint(os.Stdout, meta)
}

// Fprint распечатывает сведения о сборке в w. Пустые значения заменяются на N/A.
func Fprint(w io.Writer, meta Meta) {
	_, _ = fmt.Fprintf(w, "Build version: %s\n", orDefault(meta.Version))
	_, _ = fmt.Fprintf(w, "Build date: %s\n", orDefault(meta.Date))
	_, _ = fmt.Fprintf(w, "Build commit: %s\n", orDefault(meta.Commit))
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
