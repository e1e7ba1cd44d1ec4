package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"voxelchunks/internal/commands"
	"voxelchunks/internal/config"
	"voxelchunks/internal/persistence/indexdb"
	persistlog "voxelchunks/internal/persistence/log"
	"voxelchunks/internal/selection"
	"voxelchunks/internal/world/chunkstore"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "chunkinfo":
		chunkInfoCmd(os.Args[2:])
	case "listchunks":
		listChunksCmd(os.Args[2:])
	case "delchunks":
		os.Exit(delChunksCmd(os.Args[2:]))
	case "history":
		historyCmd(os.Args[2:])
	case "audit":
		auditCmd(os.Args[2:])
	case "parse":
		parseCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: delchunks <chunkinfo|listchunks|delchunks|history|audit|parse> [flags]")
}

func chunkInfoCmd(args []string) {
	fs := flag.NewFlagSet("chunkinfo", flag.ExitOnError)
	pos := fs.String("pos", "", "block position x,y,z (required)")
	_ = fs.Parse(args)

	if strings.TrimSpace(*pos) == "" {
		fmt.Fprintln(os.Stderr, "missing -pos")
		os.Exit(2)
	}
	v, err := selection.ParseVec3(*pos)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -pos:", err)
		os.Exit(2)
	}
	cmds := commands.New(config.Defaults(), nil)
	cmds.ChunkInfo(&consolePlayer{consoleActor: newConsoleActor(), pos: v})
}

func listChunksCmd(args []string) {
	fs := flag.NewFlagSet("listchunks", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to delchunks.yaml (optional)")
	selPath := fs.String("selection", "", "selection document (json)")
	aabb := fs.String("aabb", "", "selection as AABB: x1,y1,z1:x2,y2,z2")
	page := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	sel := loadSelection(*selPath, *aabb)

	cmds := commands.New(cfg, nil)
	cmds.PageCommand = listPageCommand(*selPath, *aabb)
	if err := cmds.ListChunks(newConsoleActor(), sel, *page); err != nil {
		os.Exit(1)
	}
}

// delChunksCmd returns the exit code so deferred closes run before exit.
func delChunksCmd(args []string) int {
	fs := flag.NewFlagSet("delchunks", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to delchunks.yaml (optional)")
	selPath := fs.String("selection", "", "selection document (json)")
	aabb := fs.String("aabb", "", "selection as AABB: x1,y1,z1:x2,y2,z2")
	shell := fs.String("shell", "", "override shell_save_type: bat or bash")
	outDir := fs.String("out", "", "override output_dir")
	worldDir := fs.String("world_dir", "", "override world_dir")
	noRecord := fs.Bool("no_record", false, "skip the audit log and index")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *shell != "" {
		cfg.ShellSaveType = *shell
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *worldDir != "" {
		cfg.WorldDir = *worldDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	sel := loadSelection(*selPath, *aabb)

	logger := log.New(os.Stderr, "[delchunks] ", log.LstdFlags|log.Lmicroseconds)
	var recorders []commands.Recorder
	if !*noRecord {
		if cfg.AuditDir != "" {
			audit := persistlog.NewAuditLogger(cfg.AuditDir)
			defer audit.Close()
			recorders = append(recorders, audit)
		}
		if cfg.IndexDB != "" {
			idx, err := indexdb.OpenSQLite(cfg.IndexDB)
			if err != nil {
				logger.Printf("index disabled: %v", err)
			} else {
				defer idx.Close()
				recorders = append(recorders, idx)
			}
		}
	}

	cmds := commands.New(cfg, logger, recorders...)
	if _, err := cmds.DeleteChunks(newConsoleActor(), sel); err != nil {
		return 1
	}
	return 0
}

func parseCmd(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: delchunks parse <c.X.Z.dat>...")
		os.Exit(2)
	}
	failed := false
	for _, name := range fs.Args() {
		c, err := chunkstore.ParseLegacyFilename(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		fmt.Printf("%s %d %d %s\n", name, c.X, c.Z, chunkstore.McRegionName(c))
	}
	if failed {
		os.Exit(1)
	}
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(2)
	}
	return cfg
}

// loadSelection returns nil (no selection) when neither source is given;
// the command reports that to the operator.
func loadSelection(path, aabb string) selection.Selection {
	switch {
	case strings.TrimSpace(path) != "" && strings.TrimSpace(aabb) != "":
		fmt.Fprintln(os.Stderr, "use either -selection or -aabb, not both")
		os.Exit(2)
	case strings.TrimSpace(path) != "":
		sel, err := selection.LoadDocument(path)
		if err != nil {
			if !errors.Is(err, selection.ErrNoSelection) {
				fmt.Fprintln(os.Stderr, "selection:", err)
				os.Exit(2)
			}
			return nil
		}
		return sel
	case strings.TrimSpace(aabb) != "":
		c, err := selection.ParseAABB(aabb)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad -aabb:", err)
			os.Exit(2)
		}
		return c
	}
	return nil
}

func listPageCommand(selPath, aabb string) string {
	if strings.TrimSpace(selPath) != "" {
		return "delchunks listchunks -selection " + selPath + " -page %page%"
	}
	if strings.TrimSpace(aabb) != "" {
		return "delchunks listchunks -aabb " + aabb + " -page %page%"
	}
	return ""
}
