package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-finder/internal/ocr"
	"github.com/ironsheep/plate-finder/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("plate-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("plate-mcp - MCP server for licence plate detection")
			fmt.Println()
			fmt.Println("Usage: plate-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PLATE_LOG_LEVEL=debug          Enable debug logging")
			fmt.Println("  PLATE_OCR_BACKEND=space|tesseract")
			fmt.Println("                                 Engine used by plate_read (default: space)")
			fmt.Println("  OCR_SPACE_API_KEY              API key for the OCR.space backend")
			fmt.Println("  OCR_SPACE_URL                  Override the OCR.space endpoint")
			fmt.Println("  TESSDATA_PREFIX                Tesseract language data directory")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// stdout is reserved for the protocol.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if os.Getenv("PLATE_LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("plate MCP server starting")

	rec, err := ocr.NewFromEnv(os.Getenv("PLATE_OCR_BACKEND"), os.Getenv, logger)
	if err != nil {
		logger.WithError(err).Warn("OCR disabled, plate_read will fail")
		rec = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{Logger: logger, Recognizer: rec})
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Fatal("server error")
	}
}
