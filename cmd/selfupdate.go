package cmd

import (
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the release source self-update checks against.
const githubRepoSlug = "xctestgo/xctestgo"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update xctestgo to the latest released version",
		Long:  `Checks for the latest release on GitHub and, if it is newer than the running binary, replaces the binary in place.`,
		RunE:  runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	version := cmd.Root().Version
	if version == "" || version == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return fmt.Errorf("configuring update source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return fmt.Errorf("configuring updater: %w", err)
	}

	slug := selfupdate.ParseSlug(githubRepoSlug)

	latest, found, err := updater.DetectLatest(cmd.Context(), slug)
	if err != nil {
		return fmt.Errorf("checking for latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", githubRepoSlug)
	}
	if !latest.GreaterThan(version) {
		cmd.Printf("xctestgo is already up to date (%s)\n", version)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating running executable: %w", err)
	}
	if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
		return fmt.Errorf("applying update: %w", err)
	}

	cmd.Printf("Updated to version %s\n", latest.Version())
	return nil
}
