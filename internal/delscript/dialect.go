// Package delscript renders shell scripts that delete legacy per-chunk files
// outside the running server.
package delscript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDialectUnset   = errors.New("shell script type is not configured")
	ErrDialectUnknown = errors.New("unknown shell script type")
	ErrWorldDir       = errors.New("invalid world dir")
)

type Dialect int

const (
	Windows Dialect = iota + 1
	Posix
)

// ParseDialect maps the shell_save_type setting ("bat" or "bash", any case)
// to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0, ErrDialectUnset
	case strings.EqualFold(s, "bat"):
		return Windows, nil
	case strings.EqualFold(s, "bash"):
		return Posix, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrDialectUnknown, s)
	}
}

func (d Dialect) String() string {
	switch d {
	case Windows:
		return "bat"
	case Posix:
		return "bash"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// FileName is the script name written into the output directory.
func (d Dialect) FileName() string {
	if s, ok := syntaxes[d]; ok {
		return "worldedit-delchunks." + s.ext
	}
	return ""
}

// syntax holds everything that differs between dialects.
type syntax struct {
	ext    string
	eol    string
	header []string
	footer []string
	// entry returns the lines that report and remove one chunk file.
	entry func(filename, path string) []string
}

var syntaxes = map[Dialect]syntax{
	Windows: {
		ext: "bat",
		eol: "\r\n",
		header: []string{
			"@ECHO off",
			"ECHO This batch file was generated by WorldEdit.",
			"ECHO It contains a list of chunks that were in the selected region",
			"ECHO at the time that the /delchunks command was used. Run this file",
			"ECHO in order to delete the chunk files listed in this file.",
			"ECHO.",
			"PAUSE",
		},
		footer: []string{
			"ECHO Complete.",
			"PAUSE",
		},
		entry: func(filename, path string) []string {
			return []string{
				"ECHO " + filename,
				"DEL " + quoteBatch(path),
			}
		},
	},
	Posix: {
		ext: "sh",
		eol: "\n",
		header: []string{
			"#!/bin/bash",
			"echo This shell file was generated by WorldEdit.",
			"echo It contains a list of chunks that were in the selected region",
			"echo at the time that the /delchunks command was used. Run this file",
			"echo in order to delete the chunk files listed in this file.",
			"echo",
			`read -p "Press any key to continue..."`,
		},
		footer: []string{
			"echo Complete.",
			`read -p "Press any key to continue..."`,
		},
		entry: func(filename, path string) []string {
			return []string{
				"echo " + filename,
				"rm " + quotePosix(path),
			}
		},
	},
}

// quoteBatch wraps s in double quotes for cmd.exe. Percent signs are doubled
// so they are not expanded as variables; s must not contain '"'.
func quoteBatch(s string) string {
	return `"` + strings.ReplaceAll(s, "%", "%%") + `"`
}

// quotePosix wraps s in double quotes, escaping the characters that stay
// special inside them.
func quotePosix(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
