// main.go
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"appshell/internal/app"
	"appshell/internal/config"
	"appshell/internal/sitetemplates"
	"appshell/internal/util"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var appIcon []byte

var (
	showHelp    = flag.Bool("h", false, "Show help")
	version     = flag.Bool("version", false, "Show version")
	interactive = flag.Bool("i", false, "Interactive setup when creating a site")
	openBrowser = flag.Bool("open", false, "Open the site in a browser after starting")
)

// appVersion is set at build time via -ldflags "-X main.appVersion=x.y.z"
var appVersion = "dev"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("AppShell v%s\n", appVersion)
		return
	}

	if *showHelp {
		showUsage()
		return
	}

	args := flag.Args()

	// No arguments - run desktop UI
	if len(args) == 0 {
		runDesktopApp()
		return
	}

	command := args[0]

	switch command {
	case "serve":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: serve command requires directory path")
			fmt.Fprintln(os.Stderr, "Usage: appshell serve <site-directory>")
			os.Exit(1)
		}
		runCLIServe(args[1])

	case "init":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: init command requires directory path")
			fmt.Fprintln(os.Stderr, "Usage: appshell init <site-directory> [template]")
			os.Exit(1)
		}
		template := ""
		if len(args) > 2 {
			template = args[2]
		}
		runCLIInit(args[1], template)

	case "templates":
		runCLITemplates()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		fmt.Fprintln(os.Stderr)
		showUsage()
		os.Exit(1)
	}
}

func runDesktopApp() {
	app := NewApp()

	err := wails.Run(&options.App{
		Title:  "AppShell  ·  sites that install",
		Width:  1100,
		Height: 760,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		Linux: &linux.Options{
			Icon: appIcon,
		},

		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []any{app},
	})
	if err != nil {
		log.Fatal(err)
	}
}

func runCLIServe(siteDirArg string) {
	absDir, err := filepath.Abs(siteDirArg)
	if err != nil {
		log.Fatalf("Invalid site directory: %v", err)
	}

	if stat, err := os.Stat(absDir); err != nil || !stat.IsDir() {
		log.Fatalf("Site directory does not exist: %s (run: appshell init %s)", absDir, siteDirArg)
	}

	cfgPath := filepath.Join(absDir, "appshell.json")
	cfg, _, err := config.Ensure(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	printSiteBanner(absDir, cfgPath, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("\nShutting down gracefully...")
		cancel()
	}()

	var onReady func(string)
	if *openBrowser {
		onReady = func(url string) {
			if err := util.OpenURL(url); err != nil {
				log.Printf("Could not open browser: %v", err)
			}
		}
	}

	if err := app.Run(ctx, app.Options{
		SiteDir: absDir,
		CfgPath: cfgPath,
		Cfg:     cfg,
		TeeLogs: os.Stderr,
		OnReady: onReady,
	}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runCLIInit(siteDirArg, template string) {
	absDir, err := filepath.Abs(siteDirArg)
	if err != nil {
		log.Fatalf("Invalid site directory: %v", err)
	}

	cfgPath, err := app.InitSite(absDir, template, "")
	if err != nil {
		log.Fatalf("Init failed: %v", err)
	}

	if *interactive {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = app.PromptInteractive(absDir, cfgPath, cfg)
		if err := config.Save(cfgPath, cfg); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
	}

	fmt.Printf("Site ready at %s\n", absDir)
	fmt.Println()
	fmt.Printf("  Serve it:  appshell serve %s\n", siteDirArg)
	fmt.Printf("  Config:    %s\n", cfgPath)
}

func runCLITemplates() {
	templates, err := sitetemplates.List()
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}
	fmt.Println("Available templates:")
	fmt.Println()
	for _, m := range templates {
		fmt.Printf("  %-10s %s %s\n", m.Dir, m.Icon, m.Description)
	}
}

func showUsage() {
	fmt.Println("AppShell - serve a folder as an installable app")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  appshell                     Run desktop application (default)")
	fmt.Println("  appshell init <directory>    Scaffold a new site")
	fmt.Println("  appshell serve <directory>   Serve a site without GUI")
	fmt.Println("  appshell templates           List starter templates")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init <directory> [template]")
	fmt.Println("        Create a site folder with config and starter files")
	fmt.Println("        Templates: run 'appshell templates' for the list")
	fmt.Println()
	fmt.Println("  serve <directory>")
	fmt.Println("        Serve the site from the specified directory")
	fmt.Println("        The directory gets an appshell.json configuration file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h        Show this help message")
	fmt.Println("  -i        Interactive setup (with init)")
	fmt.Println("  -open     Open the browser after starting (with serve)")
	fmt.Println("  -version  Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Run desktop app")
	fmt.Println("  appshell")
	fmt.Println()
	fmt.Println("  # Create and serve a site")
	fmt.Println("  appshell init ./mysite")
	fmt.Println("  appshell serve ./mysite")
	fmt.Println()
	fmt.Println("  # Create a blog with interactive setup")
	fmt.Println("  appshell -i init ./notes blog")
}

func printSiteBanner(siteDir, cfgPath string, cfg config.Config) {
	fmt.Println("╔════════════════════════════════════════════════════════╗")
	fmt.Println("║                  AppShell Site Server                  ║")
	fmt.Println("╚════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Site Directory: %s\n", siteDir)
	fmt.Printf("Config File:    %s\n", cfgPath)
	if cfg.Site.Name != "" {
		fmt.Printf("Site Name:      %s\n", cfg.Site.Name)
	}
	fmt.Println()

	if cfg.Shell.Domain != "" {
		fmt.Printf("🌐 Serving on:     https://%s\n", cfg.Shell.Domain)
	} else if cfg.Shell.HTTPAddr != "" {
		_, url, _ := app.NormalizeLocalAddr(cfg.Shell.HTTPAddr)
		fmt.Printf("🌐 Serving on:     %s\n", url)
	}
	if cfg.Shell.DevMode {
		fmt.Println("Mode: Dev (pages reload on edit)")
	}

	fmt.Println()
	fmt.Println("Starting server... (Press Ctrl+C to stop)")
	fmt.Println("────────────────────────────────────────────────────────")
	fmt.Println()
}
