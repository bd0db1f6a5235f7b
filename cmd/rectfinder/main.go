package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/james-nesbitt/coding-challenges/internal/config"
	"github.com/james-nesbitt/coding-challenges/internal/detection"
	"github.com/james-nesbitt/coding-challenges/internal/geometry"
	"github.com/james-nesbitt/coding-challenges/internal/points"
	"github.com/james-nesbitt/coding-challenges/internal/render"
	"github.com/james-nesbitt/coding-challenges/internal/routes"
	"github.com/james-nesbitt/coding-challenges/internal/server"
	"github.com/james-nesbitt/coding-challenges/internal/vowels"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before touching the environment
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("rectfinder %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		}
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rectfinder: %v\n", err)
		os.Exit(2)
	}
	// Logging goes to stderr; stdout is for MCP protocol and reports
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, logger, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		logger.Error("rectfinder failed", "error", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "rectfinder - find rectangles among 2D points")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rectfinder                                 Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  rectfinder find [file] [--render out.png]  Report every rectangle")
	fmt.Fprintln(w, "  rectfinder vowels [file]                   Find 2x2 vowel squares")
	fmt.Fprintln(w, "  rectfinder routes [file]                   Find head to tail routes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a file, each command uses its built-in sample.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintf(w, "  %s=debug       Log level: debug, info, warn, error\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s=%s  Perpendicular test: %s or %s\n",
		config.EnvPerpendicular, geometry.ModeVector, geometry.ModeVector, geometry.ModeMagnitude)
	fmt.Fprintf(w, "  %s=1e-9       Relative float tolerance\n", config.EnvTolerance)
	fmt.Fprintf(w, "  %s=0         Server cap on points per call (0: none)\n", config.EnvMaxPoints)
	fmt.Fprintf(w, "  %s=eng     Tesseract language\n", config.EnvOCRLanguage)
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		logger.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)
		server.Version = Version
		srv := server.New(server.WithConfig(cfg), server.WithLogger(logger))
		return srv.Run(ctx)
	}

	switch args[0] {
	case "find":
		return runFind(ctx, cfg, logger, args[1:], stdout)
	case "vowels":
		return runVowels(args[1:], stdout)
	case "routes":
		return runRoutes(args[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q, see --help", args[0])
	}
}

type findArgs struct {
	file   string
	render string
}

func parseFindArgs(args []string) (findArgs, error) {
	var a findArgs
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--render", "-r":
			if i+1 >= len(args) {
				return a, fmt.Errorf("%s needs an output path", arg)
			}
			i++
			a.render = args[i]
		default:
			if a.file != "" {
				return a, fmt.Errorf("unexpected argument %q", arg)
			}
			a.file = arg
		}
	}
	return a, nil
}

func runFind(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	a, err := parseFindArgs(args)
	if err != nil {
		return err
	}

	pts := points.Sample()
	if a.file != "" {
		pts, err = points.NewCache().Load(a.file)
		if err != nil {
			return err
		}
	}
	logger.Debug("searching", "points", len(pts), "combinations", detection.Binomial4(len(pts)), "mode", cfg.Perpendicular)

	result, err := detection.Report(ctx, stdout, pts, cfg.Predicate())
	if err != nil {
		return err
	}

	if a.render == "" {
		return nil
	}
	img, err := render.Plot(pts, result.Matches, render.Options{Labels: true})
	if err != nil {
		return err
	}
	if err := render.Save(a.render, img); err != nil {
		return err
	}
	logger.Info("plot written", "path", a.render, "rectangles", len(result.Matches))
	return nil
}

// readInput returns the contents of the single optional file argument.
func readInput(args []string) (string, bool, error) {
	switch len(args) {
	case 0:
		return "", false, nil
	case 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", false, fmt.Errorf("failed to read input: %w", err)
		}
		return string(b), true, nil
	default:
		return "", false, errors.New("expected at most one file argument")
	}
}

func runVowels(args []string, stdout io.Writer) error {
	text, ok, err := readInput(args)
	if err != nil {
		return err
	}
	m := vowels.Sample
	if ok {
		if m, err = vowels.ParseMatrix(text); err != nil {
			return err
		}
	}
	for _, p := range vowels.FindSquares(m) {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func runRoutes(args []string, stdout io.Writer) error {
	text, ok, err := readInput(args)
	if err != nil {
		return err
	}
	edges := routes.SampleEdges
	if ok {
		if edges, err = routes.ParseEdges(text); err != nil {
			return err
		}
	}
	for _, r := range routes.Build(edges).AllRoutes() {
		fmt.Fprintln(stdout, r)
	}
	return nil
}
