// Command qrforge exports QR codes from the command line: one payload to a file,
// or a CSV of rows to a ZIP archive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"qrforge/internal/adapters/csvrows"
	"qrforge/internal/adapters/save"
	"qrforge/internal/core/qr"
	"qrforge/internal/modkit"
	"qrforge/internal/platform/config"
	"qrforge/internal/platform/logger"
	"qrforge/internal/platform/net/http/bind"
	batchdom "qrforge/internal/services/batch/domain"
	batchmod "qrforge/internal/services/batch/module"
	batchsvc "qrforge/internal/services/batch/service"
	exportdom "qrforge/internal/services/export/domain"
	exportmod "qrforge/internal/services/export/module"
	exportsvc "qrforge/internal/services/export/service"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

// logOptions keeps the CLI's stderr for progress and row failures. Pipeline
// logs only show from error up unless LOG_LEVEL asks for more
func logOptions(stderr io.Writer) logger.Options {
	opt := logger.FromEnv()
	opt.Writer = stderr
	if os.Getenv("LOG_LEVEL") == "" {
		opt.Level = "error"
	}
	return opt
}

func main() {
	logger.Init(logOptions(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qrforge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fPayload = fs.String("payload", "", "text or URL to encode (single export)")
		fCSV     = fs.String("csv", "", "CSV file with a header row (batch export)")
		fFormat  = fs.String("format", "png", "output format: svg | png | pdf")
		fOut     = fs.String("out", ".", "output directory")
		fName    = fs.String("name", "", "base file name for a single export")
		fTitle   = fs.String("title", "", "PDF heading")
		fSize    = fs.Int("size", qr.DefaultSize, "edge length in pixels (100-1000)")
		fFG      = fs.String("fg", qr.DefaultForeground, "foreground color")
		fBG      = fs.String("bg", qr.DefaultBackground, "background color or transparent")
		fLevel   = fs.String("level", string(qr.LevelM), "error correction: L | M | Q | H")
		fEngine  = fs.String("engine", "", "matrix engine: skip2 | rsc (default from CORE_EXPORT_ENGINE)")
		fIDCol   = fs.String("id-col", csvrows.DefaultIDColumn, "CSV column used for file names")
		fPayCol  = fs.String("payload-col", csvrows.DefaultPayloadColumn, "CSV column holding the payload")
		fArchive = fs.String("archive", "", "archive file name (default from CORE_BATCH_ARCHIVE_NAME)")
		fFold    = fs.Bool("fold-names", false, "strip accents from identifiers before naming files")
		fQuiet   = fs.Bool("quiet", false, "no progress output")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if (*fPayload == "") == (*fCSV == "") {
		_, _ = fmt.Fprintln(stderr, "error: pass exactly one of -payload or -csv")
		fs.Usage()
		return exitUsage
	}

	mustSetEnv("CORE_EXPORT_ENGINE", *fEngine)
	mustSetEnv("CORE_BATCH_ARCHIVE_NAME", *fArchive)
	if *fFold {
		mustSetEnv("CORE_BATCH_FOLD_NAMES", "true")
	}

	deps := modkit.Deps{Cfg: config.New(), Log: logger.Named("cli")}
	svc := exportmod.NewService(deps, exportmod.FromConfig(deps.Cfg))
	sink := save.NewDir(*fOut)

	if *fPayload != "" {
		art, err := svc.Export(ctx, exportdom.Request{
			Payload:    *fPayload,
			Format:     *fFormat,
			SizePx:     *fSize,
			Foreground: *fFG,
			Background: *fBG,
			Level:      *fLevel,
			Name:       *fName,
			Title:      *fTitle,
		}, sink)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %s\n", exportsvc.UserMessage(err))
			return exitFail
		}
		_, _ = fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", filepath.Join(*fOut, art.FileName), len(art.Bytes))
		return exitOK
	}

	return runBatch(ctx, deps, svc, sink, batchdom.Request{
		Format:     *fFormat,
		SizePx:     *fSize,
		Foreground: *fFG,
		Background: *fBG,
		Level:      *fLevel,
		Title:      *fTitle,
	}, *fCSV, *fIDCol, *fPayCol, *fOut, *fQuiet, stdout, stderr)
}

func runBatch(ctx context.Context, deps modkit.Deps, producer exportdom.Producer, sink save.Port,
	req batchdom.Request, csvPath, idCol, payloadCol, outDir string, quiet bool, stdout, stderr io.Writer) int {
	f, err := os.Open(csvPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	defer func() { _ = f.Close() }()

	rows, err := csvrows.Read(f, idCol, payloadCol)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", exportsvc.UserMessage(err))
		return exitFail
	}
	req.Rows = rows
	if err := bind.Struct(req); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", exportsvc.UserMessage(err))
		return exitFail
	}

	opts := batchmod.FromConfig(deps.Cfg)
	if err := opts.Limits.CheckRows(len(rows)); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", exportsvc.UserMessage(err))
		return exitFail
	}
	cfg := req.Config(opts.Limits)
	cfg.Save = sink

	var progress batchdom.Progress
	if !quiet {
		progress = func(done, total int) {
			_, _ = fmt.Fprintf(stderr, "\r%d/%d rows (%.1f%%)", done, total, batchdom.Percentage(done, total))
			if done == total {
				_, _ = fmt.Fprintln(stderr)
			}
		}
	}

	sum, err := batchsvc.NewPipeline(producer, deps.Now()).Run(ctx, rows, cfg, progress)
	if err != nil && !quiet {
		// progress stopped short of its own newline
		_, _ = fmt.Fprintln(stderr)
	}
	for _, rf := range sum.Failures {
		_, _ = fmt.Fprintf(stderr, "row %d %q: %s\n", rf.Index, rf.Identifier, rf.Message)
	}
	if err != nil {
		msg := exportsvc.UserMessage(err)
		if errors.Is(err, context.Canceled) {
			msg = "batch cancelled"
		}
		_, _ = fmt.Fprintf(stderr, "error: %s\n", msg)
		return exitFail
	}
	_, _ = fmt.Fprintf(stdout, "wrote %s: %d succeeded, %d failed\n",
		filepath.Join(outDir, sum.ArchiveName), sum.Succeeded, sum.Failed)
	return exitOK
}
