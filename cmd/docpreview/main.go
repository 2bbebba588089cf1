// Command docpreview renders document previews from the command line or
// serves them over HTTP.
//
// Usage:
//
//	docpreview serve [-config config.toml]
//	docpreview count FILE
//	docpreview render [-page N] [-o out.png] FILE
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/docpreview"
	"github.com/tsawler/docpreview/internal/config"
	"github.com/tsawler/docpreview/internal/logging"
	"github.com/tsawler/docpreview/internal/server"
	"github.com/tsawler/docpreview/pdfraster"
)

const usage = `usage:
  docpreview serve [-config config.toml]
  docpreview count FILE
  docpreview render [-page N] [-o out.png] FILE
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "serve":
		err = serve(ctx, args[1:], stderr)
	case "count":
		err = count(args[1:], stdout, stderr)
	case "render":
		err = renderPage(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "docpreview:", err)
		return 1
	}
	return 0
}

type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	previewer *docpreview.Previewer
}

// setup loads configuration and builds the logger and previewer from it.
func setup(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	raster, err := pdfraster.New(cfg.PDF.Backend)
	if err != nil {
		return nil, err
	}

	logger := logging.New(&cfg.Logging, logOut)
	return &app{
		cfg:    cfg,
		logger: logger,
		previewer: docpreview.New(
			docpreview.WithLogger(logger),
			docpreview.WithRasterizer(raster),
			docpreview.WithDPI(cfg.PDF.DPI),
		),
	}, nil
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := setup(*configPath, os.Stdout)
	if err != nil {
		return err
	}
	cfg := a.cfg

	if err := os.MkdirAll(cfg.Server.DocsDir, 0o755); err != nil {
		return fmt.Errorf("creating documents directory: %w", err)
	}

	s := server.New(a.previewer, server.Options{
		DocsDir:        cfg.Server.DocsDir,
		MaxUploadSize:  cfg.Server.MaxUploadSizeBytes(),
		MaxConnections: cfg.Server.MaxConnections,
		Logger:         a.logger,
	})
	return s.Run(ctx, cfg.Server.Addr, cfg.ShutdownTimeoutDuration())
}

func count(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("count needs exactly one FILE")
	}
	path := fs.Arg(0)

	a, err := setup(*configPath, stderr)
	if err != nil {
		return err
	}
	p := a.previewer
	if !p.IsSupported(path) {
		return docpreview.Unsupported(path)
	}

	fmt.Fprintln(stdout, p.PageCount(path))
	return nil
}

func renderPage(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the TOML configuration file")
	page := fs.Int("page", 1, "page, slide or sheet number (1-based)")
	out := fs.String("o", "", "output PNG file (default: FILE-pN.png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("render needs exactly one FILE")
	}
	path := fs.Arg(0)

	a, err := setup(*configPath, stderr)
	if err != nil {
		return err
	}

	data, err := a.previewer.PreviewPNG(path, *page)
	if err != nil {
		return err
	}

	dst := *out
	if dst == "" {
		dst = fmt.Sprintf("%s-p%d.png", path, *page)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintln(stdout, dst)
	return nil
}
