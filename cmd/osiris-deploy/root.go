package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/osiriscare/deploy/internal/config"
	"github.com/osiriscare/deploy/internal/deploy"
	"github.com/osiriscare/deploy/internal/history"
	"github.com/osiriscare/deploy/internal/hostinfo"
)

const supportMessage = "If the problem persists, contact support@osiriscare.net with the log output above."

func newRootCmd() *cobra.Command {
	cfg := config.New()
	dryRun := false

	cmd := &cobra.Command{
		Use:   "osiris-deploy",
		Short: "Deploy and verify the OsirisCare agent on this host",
		Long: `osiris-deploy downloads the signed OsirisCare agent installer for your
partner account, runs it silently, and verifies the installation
(program files, registry state, and services) before reporting success.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), cfg, dryRun)
		},
	}

	cmd.Flags().StringVar(&cfg.AccountKey, "account-key", cfg.AccountKey,
		"32-character partner account key")
	cmd.Flags().StringVar(&cfg.OrganizationKey, "organization-key", cfg.OrganizationKey,
		"organization label this host belongs to")
	cmd.Flags().BoolVar(&cfg.Reregister, "reregister", false,
		"clear persisted agent identity and force a fresh registration")
	cmd.Flags().BoolVar(&cfg.Reinstall, "reinstall", false,
		"stop the agent services and reinstall without clearing identity")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"validate parameters and print diagnostics without touching the system")

	cmd.AddCommand(newHistoryCmd())

	cmd.SetContext(context.Background())
	return cmd
}

func runDeploy(ctx context.Context, cfg config.Config, dryRun bool) error {
	host := hostinfo.Collect(ctx)

	if dryRun {
		if err := cfg.Validate(); err != nil {
			return &deploy.ConfigError{Reason: err.Error()}
		}
		log.Printf("[deploy] Dry run: no system or network action will be taken")
		log.Printf("[deploy] Host: %s", host.Hostname)
		log.Printf("[deploy] OS: %s (%s)", host.OSCaption, host.Architecture)
		log.Printf("[deploy] Account key: %s", cfg.MaskedAccountKey())
		log.Printf("[deploy] Organization key: %s", cfg.OrganizationKey)
		log.Printf("[deploy] Would download: %s/%s/%s", cfg.BaseURL, cfg.MaskedAccountKey(), cfg.InstallerName)
		return nil
	}

	orch := deploy.New(cfg, host)
	outcome, err := orch.Run(ctx)

	recordHistory(cfg, host, orch.Mode(), outcome, err)

	if err != nil {
		return err
	}

	switch outcome {
	case deploy.OutcomeAlreadyInstalled:
		log.Printf("[deploy] Agent already installed; nothing to do")
	default:
		log.Printf("[deploy] Agent installed and verified successfully")
	}
	return nil
}

// recordHistory appends the run to the local audit trail. Best-effort only:
// a history failure must never change the deployment's exit code.
func recordHistory(cfg config.Config, host hostinfo.Info, mode string, outcome deploy.Outcome, runErr error) {
	trail, err := history.Open(config.DataDir())
	if err != nil {
		log.Printf("[history] Could not open deployment history: %v", err)
		return
	}
	defer trail.Close()

	entry := history.Entry{
		Hostname:         host.Hostname,
		MaskedAccountKey: cfg.MaskedAccountKey(),
		OrganizationKey:  cfg.OrganizationKey,
		Mode:             mode,
	}
	switch {
	case runErr != nil:
		entry.Outcome = history.OutcomeFailed
		entry.Error = runErr.Error()
	case outcome == deploy.OutcomeAlreadyInstalled:
		entry.Outcome = history.OutcomeAlreadyInstalled
	default:
		entry.Outcome = history.OutcomeSuccess
	}

	if err := trail.Record(entry); err != nil {
		log.Printf("[history] Could not record deployment: %v", err)
	}
}

func newHistoryCmd() *cobra.Command {
	limit := 20

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent deployment runs recorded on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			trail, err := history.Open(config.DataDir())
			if err != nil {
				return fmt.Errorf("open deployment history: %w", err)
			}
			defer trail.Close()

			entries, err := trail.Recent(limit)
			if err != nil {
				return fmt.Errorf("read deployment history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deployments recorded on this host.")
				return nil
			}

			for _, e := range entries {
				line := fmt.Sprintf("%s  %-10s  %-17s  org=%s", e.Timestamp.Format("2006-01-02 15:04:05"),
					e.Mode, e.Outcome, e.OrganizationKey)
				if e.Error != "" {
					line += "  error=" + e.Error
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", limit, "maximum number of runs to show")
	return cmd
}

// reportFailure prints the single user-facing failure message. Configuration
// errors are the operator's to fix; everything else gets the support line.
func reportFailure(err error) {
	log.Printf("[deploy] FAILED: %v", err)

	var cfgErr *deploy.ConfigError
	if !errors.As(err, &cfgErr) {
		log.Printf("[deploy] %s", supportMessage)
	}
}
