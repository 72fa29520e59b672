package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
	"github.com/pcoscompass/pcoscompass/internal/intake"
	"github.com/pcoscompass/pcoscompass/internal/render"
	"github.com/pcoscompass/pcoscompass/internal/util"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	interactive := flag.Bool("interactive", false, "Launch interactive intake")
	flag.BoolVar(interactive, "i", false, "Launch interactive intake (shortcut)")
	configFile := flag.String("config", "", "Load intake from YAML file")
	validateOnly := flag.Bool("validate", false, "Validate the intake config and exit")
	serverURL := flag.String("server", "http://localhost:8000", "Analysis service base URL")
	timeout := flag.Duration("timeout", diagnosis.DefaultTimeout, "Analysis request timeout")
	maxImageSize := flag.String("max-image-size", "10MB", "Maximum ultrasound image size (e.g., '10MB')")
	fallbackMode := flag.String("fallback", "template", "Behavior when the service returns no recommendation: template, degraded")
	outputWidth := flag.Int("width", 100, "Report output width for non-interactive mode")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("pcoscompass %s\n", version)
		os.Exit(0)
	}

	maxSize, err := util.ParseSize(*maxImageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -max-image-size: %v\n", err)
		os.Exit(1)
	}

	var policy diagnosis.FallbackPolicy
	switch *fallbackMode {
	case "template":
		policy = diagnosis.FallbackSynthesize
	case "degraded":
		policy = diagnosis.FallbackDegraded
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid -fallback %q (use template or degraded)\n", *fallbackMode)
		os.Exit(1)
	}

	opts := ui.Options{
		ServerURL:    *serverURL,
		Timeout:      *timeout,
		MaxImageSize: maxSize,
		Fallback:     policy,
	}

	if *validateOnly && *configFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -validate requires -config")
		os.Exit(1)
	}

	// Interactive is the default when no config is given
	if *interactive || *configFile == "" {
		if err := ui.Run(*configFile, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	record, err := ui.LoadFromYAML(*configFile, maxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if errs := intake.ValidateAll(record); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Intake is incomplete (%d issue(s)):\n", len(errs))
		for _, f := range intake.Fields() {
			if msg, ok := errs[f.Name]; ok {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Label, msg)
			}
		}
		os.Exit(1)
	}

	if *validateOnly {
		fmt.Println("Intake is valid.")
		os.Exit(0)
	}

	if err := submit(record, opts, *outputWidth); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// submit runs a single non-interactive submission and prints the report.
func submit(record *intake.Record, opts ui.Options, width int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	notifier := diagnosis.NotifierFunc(func(n diagnosis.Notification) {
		switch n.Severity {
		case diagnosis.SeverityDestructive:
			logger.Error(n.Title, "detail", n.Description)
		default:
			logger.Info(n.Title, "detail", n.Description)
		}
	})

	client := diagnosis.NewClient(opts.ServerURL, opts.Timeout)
	orch := diagnosis.NewOrchestrator(client, notifier, opts.Fallback)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout+5*time.Second)
	defer cancel()

	logger.Info("submitting intake",
		"patient", record.PatientName,
		"server", opts.ServerURL)

	report, err := orch.Submit(ctx, record)
	if err != nil {
		return err
	}

	logger.Info("report generated",
		"id", report.ID,
		"degraded", report.Degraded)

	doc := render.Parse(report.Narrative)
	fmt.Println(render.Text(doc, width))
	return nil
}
