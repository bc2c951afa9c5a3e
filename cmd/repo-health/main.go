package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/joho/godotenv"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/app"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/fetch"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/github"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/logging"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/store"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/ui"
)

const tokenEnvVar = "GH_REPO_HEALTHCHECKS_TOKEN"

func main() {
	// Load .env if present (silently ignore if not found)
	_ = godotenv.Load()

	tokenFlag := flag.String("token", "", "GitHub personal access token (overrides environment)")
	orgFlag := flag.String("org", "", "Start in the given organization's view instead of personal")
	intervalFlag := flag.Duration("interval", 5*time.Minute, "Auto-refresh interval (0 disables)")
	logFlag := flag.String("log", "", "Write logs to this file (logging is off without it)")
	debugFlag := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	logger, closeLog, err := logging.Setup(*logFlag, *debugFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	token, err := resolveToken(*tokenFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := github.NewClient(token, logger)

	// Verify the credential before taking over the terminal; a bad token is
	// fatal and only recoverable by reconfiguration.
	var login string
	var checkErr error
	err = spinner.New().
		Title("Checking GitHub credentials...").
		Action(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			login, checkErr = client.CurrentUser(ctx)
		}).
		Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if checkErr != nil {
		fmt.Fprintf(os.Stderr, "GitHub setup error: %v\n", checkErr)
		fmt.Fprintf(os.Stderr, "Check your %s token and try again.\n", tokenEnvVar)
		os.Exit(1)
	}
	logger.Info("authenticated", "login", login)

	cache, err := store.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cache.Close()

	state := app.NewState(cache, logger)
	if *orgFlag != "" {
		state.Mode = models.OrgMode(*orgFlag)
	}

	pipeline := fetch.New(client, logger)

	if err := ui.Run(state, pipeline, logger, *intervalFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// resolveToken finds the GitHub token: flag, environment, then an
// interactive prompt as a last resort
func resolveToken(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if token := os.Getenv(tokenEnvVar); token != "" {
		return token, nil
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	var token string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("GitHub personal access token").
			Description("Set " + tokenEnvVar + " in your environment or .env to skip this prompt.").
			EchoMode(huh.EchoModePassword).
			Value(&token).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("a token is required")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("no GitHub token provided: %w", err)
	}
	return token, nil
}
