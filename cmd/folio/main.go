// Package main provides the folio command.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aydenstechdungeon/folio"
	"github.com/aydenstechdungeon/folio/cli"
	"github.com/aydenstechdungeon/folio/routing"
)

func main() {
	printer := cli.NewPrinter()

	if len(os.Args) < 2 {
		printer.Banner(folio.Version)
		printUsage(printer)
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		if err := serve(os.Args[2:], printer); err != nil {
			printer.Error("%v", err)
			os.Exit(1)
		}
	case "check":
		if len(os.Args) < 3 {
			if err := checkSite(printer); err != nil {
				printer.Error("%v", err)
				os.Exit(1)
			}
			return
		}
		failed := false
		for _, path := range os.Args[2:] {
			issues, err := cli.Check(printer, path)
			if err != nil {
				printer.Error("%v", err)
				failed = true
				continue
			}
			if len(issues) > 0 {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	case "new":
		if len(os.Args) < 3 {
			printer.Error("Directory required")
			printer.Info("Usage: folio new <dir>")
			os.Exit(1)
		}
		dir := os.Args[2]
		if err := cli.Scaffold(dir); err != nil {
			printer.Error("Failed to create site: %v", err)
			os.Exit(1)
		}
		printer.Success("Created folio site '%s'", dir)
		printer.Plain("\nNext steps:")
		printer.Plain("  cd %s", dir)
		printer.Plain("  folio serve")
	case "version", "-v", "--version":
		fmt.Printf("folio v%s\n", folio.Version)
	case "help", "-h", "--help":
		printer.Banner(folio.Version)
		printUsage(printer)
	default:
		printer.Error("Unknown command: %s", cmd)
		printer.Info("Run 'folio help' for usage information")
		os.Exit(1)
	}
}

func serve(args []string, printer *cli.Printer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", cli.ConfigFile, "path to the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := folio.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	app, err := folio.New(cfg)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printer.Info("Shutting down, dropping %d page sessions...", app.Sessions())
		if err := app.Shutdown(); err != nil {
			printer.Error("Shutdown failed: %v", err)
		}
	}()

	printer.Info("Serving %s on %s", printer.Bold(cfg.PagesDir), printer.Cyan(cfg.Addr))
	return app.Listen()
}

// checkSite lints every page of the site configured in the current
// directory.
func checkSite(printer *cli.Printer) error {
	cfg, err := folio.LoadConfig(cli.ConfigFile)
	if err != nil {
		return err
	}
	failed, err := cli.CheckSite(printer, routing.NewRegistry(cfg.PagesDir))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d page(s) with issues", failed)
	}
	return nil
}

func printUsage(printer *cli.Printer) {
	printer.Plain("%s\n", printer.Bold("USAGE"))
	printer.Plain("    folio <command> [arguments]\n")

	printer.Plain("%s\n", printer.Bold("COMMANDS"))
	commands := []struct {
		cmd  string
		desc string
	}{
		{"serve [-config path]", "Serve the site's pages"},
		{"check [file.html...]", "Check modal markup, of every page by default"},
		{"new <dir>", "Create a new site"},
		{"version", "Show folio version"},
		{"help", "Show this help message"},
	}
	for _, c := range commands {
		printer.Plain("    %-24s %s", printer.Cyan(c.cmd), printer.Dim(c.desc))
	}

	printer.Plain("\n%s\n", printer.Bold("EXAMPLES"))
	printer.Plain("    folio new mysite")
	printer.Plain("    cd mysite && folio serve")
	printer.Plain("    folio check")
	printer.Plain("    folio check pages/index.html")
	printer.Plain("")
}
