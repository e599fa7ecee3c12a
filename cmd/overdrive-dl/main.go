package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/handiism/overdrive-dl/internal/config"
	"github.com/handiism/overdrive-dl/internal/download"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleVerbose = lipgloss.NewStyle().Faint(true)
	styleLabel   = lipgloss.NewStyle().Bold(true)
)

func main() {
	// Command line flags
	var (
		debugFlag    = pflag.BoolP("debug", "d", false, "Show debug output")
		tagsFlag     = pflag.BoolP("tags", "t", false, "Rewrite ID3 tags after downloading")
		ownerFlag    = pflag.BoolP("owner", "o", false, "Change owner of the downloaded files (per config)")
		skipFlag     = pflag.BoolP("skip-download", "s", false, "Skip downloading, only update tags/owner of existing files")
		forceFlag    = pflag.BoolP("force", "f", false, "Re-download files that already exist")
		metadataFlag = pflag.BoolP("print-metadata", "m", false, "Print the audiobook metadata and exit")
		configFlag   = pflag.StringP("config", "c", "", "Path to config file (default "+config.DefaultFileName+")")
	)

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Println("overdrive-dl - Download OverDrive audiobooks from .odm files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  overdrive-dl [options] <file.odm>")
		fmt.Println()
		pflag.PrintDefaults()
		os.Exit(1)
	}
	odmPath := pflag.Arg(0)

	if *skipFlag && !*tagsFlag && !*ownerFlag {
		fmt.Fprintln(os.Stderr, styleError.Render("--skip-download requires --tags and/or --owner"))
		os.Exit(1)
	}

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf("Error loading config: %v", err)))
		os.Exit(1)
	}

	logger := zap.NewNop().Sugar()
	if *debugFlag {
		zl, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf("Error creating logger: %v", err)))
			os.Exit(1)
		}
		defer zl.Sync()
		logger = zl.Sugar()
	}

	options := download.Options{
		UpdateTags:   *tagsFlag,
		UpdateOwner:  *ownerFlag,
		SkipDownload: *skipFlag,
		Force:        *forceFlag,
		// The bar and the debug log both write to stderr and would
		// interleave badly.
		ShowProgressBar: !*debugFlag,
	}

	manager := download.NewManager(settings, options, logger, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*debugFlag {
			return
		}

		switch event.Level {
		case download.LevelError:
			fmt.Fprintln(os.Stderr, styleError.Render(event.Message))
		case download.LevelWarning:
			fmt.Println(styleWarning.Render(event.Message))
		case download.LevelSuccess:
			fmt.Println(styleSuccess.Render(event.Message))
		case download.LevelVerbose:
			fmt.Println(styleVerbose.Render(event.Message))
		default:
			fmt.Println(styleInfo.Render(event.Message))
		}
	})

	// Parsing the manifest needs no network, so -m works offline.
	if err := manager.Initialize(odmPath); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf("Error reading %s: %v", odmPath, err)))
		os.Exit(1)
	}

	if *metadataFlag {
		printMetadata(manager)
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	if err := manager.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, styleError.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func printMetadata(manager *download.Manager) {
	manifest := manager.Manifest()
	book := manager.Book()

	fmt.Printf("%s %s\n", styleLabel.Render("Title:"), manifest.Title)
	fmt.Printf("%s %s\n", styleLabel.Render("Author:"), manifest.Author)
	if manifest.CoverURL != "" {
		fmt.Printf("%s %s\n", styleLabel.Render("Cover:"), manifest.CoverURL)
	}
	fmt.Printf("%s %s\n", styleLabel.Render("Folder:"), book.Path)
	fmt.Printf("%s %d\n", styleLabel.Render("Parts:"), len(book.Parts))

	var totalSize int64
	var totalDuration time.Duration
	for _, part := range book.Parts {
		totalSize += part.FileSize
		totalDuration += part.Duration
		fmt.Printf("  %2d. %-30s %9s %10.1f MB\n",
			part.Number, part.Name, formatDuration(part.Duration), float64(part.FileSize)/1024/1024)
	}
	fmt.Printf("%s %s, %.1f MB\n", styleLabel.Render("Total:"),
		formatDuration(totalDuration), float64(totalSize)/1024/1024)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
