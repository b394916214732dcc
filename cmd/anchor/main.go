package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/anchor/internal/builder"
	"github.com/standardbeagle/anchor/internal/config"
	"github.com/standardbeagle/anchor/internal/debug"
	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/persistence"
	"github.com/standardbeagle/anchor/internal/query"
	"github.com/standardbeagle/anchor/internal/rpc"
	"github.com/standardbeagle/anchor/internal/version"
	"github.com/standardbeagle/anchor/internal/watcher"
)

func resolveRoot(c *cli.Context) (string, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	return filepath.Abs(root)
}

// loadOrBuildGraph loads the on-disk cache if present, otherwise builds a
// fresh graph from a full scan of root.
func loadOrBuildGraph(ctx context.Context, root string, cfg config.Config) (*graph.Graph, error) {
	if _, err := os.Stat(cfg.Cache.Path); err == nil {
		g, err := persistence.Load(cfg.Cache.Path)
		if err == nil {
			return g, nil
		}
		debug.LogBuild("cache at %s unusable, rebuilding: %v", cfg.Cache.Path, err)
	}

	g := graph.New()
	b := builder.New(root, cfg.Index)
	if _, err := b.Build(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func printJSON(v interface{}) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(body))
	return nil
}

func overviewCommand(c *cli.Context) error {
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}
	return printJSON(query.New(g).Overview())
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: anchor search <query> [--depth N] [--pattern RE]", 1)
	}
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}

	result := g.SearchGraph(c.Args().Get(0), c.Int("depth"))
	if pattern := c.String("pattern"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid --pattern: %v", err), 1)
		}
		result.Symbols = query.FilterByPattern(result.Symbols, re)
	}
	if len(result.Connections) > 20 {
		result.Connections = result.Connections[:20]
	}
	return printJSON(result)
}

func contextCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: anchor context <query> [--intent S]", 1)
	}
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}

	intent := c.String("intent")
	if intent == "" {
		intent = "understand"
	}
	return printJSON(query.New(g).GetContext(c.Args().Get(0), intent))
}

func depsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: anchor deps <symbol>", 1)
	}
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}
	return printJSON(query.New(g).Dependencies(c.Args().Get(0)))
}

func statsCommand(c *cli.Context) error {
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}
	return printJSON(g.Stats())
}

func buildCommand(c *cli.Context) error {
	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	g := graph.New()
	b := builder.New(root, cfg.Index)
	result, err := b.Build(c.Context, g)
	if err != nil {
		return err
	}
	g.Compact()

	if err := persistence.Save(cfg.Cache.Path, g); err != nil {
		return err
	}

	if !c.Bool("no-tui") {
		fmt.Printf("scanned %d files, extracted %d\n", result.FilesScanned, result.FilesExtracted)
	}
	return printJSON(g.Stats())
}

func mcpCommand(c *cli.Context) error {
	debug.SetRPCMode(true)

	root, err := resolveRoot(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	g, err := loadOrBuildGraph(c.Context, root, cfg)
	if err != nil {
		return err
	}

	if cfg.Watch.Enabled {
		b := builder.New(root, cfg.Index)
		w := watcher.New(root, b, g, cfg.Watch.DebounceMs)
		if err := w.Start(); err != nil {
			debug.LogRPC("watcher failed to start: %v", err)
		} else {
			defer w.Stop()
		}
	}

	server := rpc.NewServer(query.New(g))
	return server.Run(c.Context)
}

func main() {
	app := &cli.App{
		Name:    "anchor",
		Usage:   "Persistent, incrementally-maintained code intelligence graph for AI coding agents",
		Version: version.Info(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Project root directory",
				Value: ".",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "overview",
				Usage:  "Print file/symbol/edge counts, a sample of src/ files, and entry points",
				Action: overviewCommand,
			},
			{
				Name:  "search",
				Usage: "Run graph-aware search",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "depth", Usage: "BFS hop count", Value: 1},
					&cli.StringFlag{Name: "pattern", Usage: "regexp to narrow matched symbol names"},
				},
				Action: searchCommand,
			},
			{
				Name:  "context",
				Usage: "Print get_context output as pretty JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "intent", Usage: "understand, explore, change, or create", Value: "understand"},
				},
				Action: contextCommand,
			},
			{
				Name:   "deps",
				Usage:  "Print a symbol's dependency record as pretty JSON",
				Action: depsCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print stats as pretty JSON",
				Action: statsCommand,
			},
			{
				Name:  "build",
				Usage: "Rebuild the graph from scratch and save the cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-tui", Usage: "Suppress human-readable progress output"},
				},
				Action: buildCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Start the MCP server with stdio transport",
				Action: mcpCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
