// internal/app/prompt.go
package app

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"appshell/internal/config"
)

func PromptInteractive(siteDir, cfgPath string, cfg config.Config) config.Config {
	in := bufio.NewReader(os.Stdin)

	fmt.Println("────────────────────────────────────────")
	fmt.Println("AppShell interactive setup")
	fmt.Printf(" Site folder : %s\n", siteDir)
	fmt.Printf(" Config file : %s\n", cfgPath)
	fmt.Println("────────────────────────────────────────")
	fmt.Println()

	cfg.Site.Name = askString(in, "Site name", cfg.Site.Name)
	cfg.Site.ShortName = askString(in, "Short name (home screen label)", cfg.Site.ShortName)
	cfg.Site.Description = askString(in, "Description", cfg.Site.Description)
	cfg.Site.ThemeColor = askString(in, "Theme color", cfg.Site.ThemeColor)

	cfg.Shell.HTTPAddr = askString(in, "Listen addr (empty=random local port)", cfg.Shell.HTTPAddr)
	cfg.Shell.DevMode = askBool(in, "Dev mode (reload pages on edit)", cfg.Shell.DevMode)

	cfg.Install.ShowDelayMs = askInt(in, "Install hint delay ms (Apple devices)", cfg.Install.ShowDelayMs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\nKeeping defaults.\n", err)
		return config.Default()
	}
	return cfg
}

func askString(in *bufio.Reader, label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	s, _ := in.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func askInt(in *bufio.Reader, label string, def int) int {
	for {
		fmt.Printf("%s [%d]: ", label, def)
		s, _ := in.ReadString('\n')
		s = strings.TrimSpace(s)
		if s == "" {
			return def
		}
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
		fmt.Println("Please enter a number.")
	}
}

func askBool(in *bufio.Reader, label string, def bool) bool {
	defStr := "n"
	if def {
		defStr = "y"
	}
	for {
		fmt.Printf("%s [y/n] (default=%s): ", label, defStr)
		s, _ := in.ReadString('\n')
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			return def
		}
		switch s {
		case "y", "yes", "true", "1":
			return true
		case "n", "no", "false", "0":
			return false
		default:
			fmt.Println("Please enter y or n.")
		}
	}
}
