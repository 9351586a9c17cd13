package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"folio/internal/bootstrap"
	"folio/internal/platform/config"
	apperrors "folio/internal/platform/errors"
	"folio/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	logger.Close()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	dataDir    string
	debug      bool
	stderr     io.Writer
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Terminal portfolio with a Serious and a Playful side",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			flags.stderr = cmd.ErrOrStderr()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/folio.yaml)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default ~/.folio)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "write debug records to the log file")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newModeCmd(flags))
	root.AddCommand(newProjectsCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newResumeCmd(flags))
	root.AddCommand(newPluginCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Options{ConfigPath: flags.configPath, DataDir: flags.dataDir})
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Debug = true
	}
	// Without a writable data dir folio still runs: logs are dropped and the
	// stores fall back to memory.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(flags.stderr, "warning: create data dir: %v\n", err)
	}
	if err := logger.Init(cfg.LogPath, cfg.Debug); err != nil {
		_, _ = fmt.Fprintf(flags.stderr, "warning: logging disabled: %v\n", err)
	}
	return bootstrap.New(cfg)
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return bootstrap.RunTUI(cmd.Context(), app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the folio terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func newModeCmd(flags *globalFlags) *cobra.Command {
	mode := &cobra.Command{
		Use:   "mode",
		Short: "Show the stored view mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.PreferenceCLI.Load(cmd.Context())
			if !out.Found {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no mode chosen yet")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Mode)
			return nil
		},
	}

	mode.AddCommand(&cobra.Command{
		Use:       "set <serious|playful>",
		Short:     "Store the view mode used on the next start",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"serious", "playful"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PreferenceCLI.Save(cmd.Context(), strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mode set to %s\n", out.Mode)
			return nil
		},
	})
	return mode
}

func newProjectsCmd(flags *globalFlags) *cobra.Command {
	projects := &cobra.Command{Use: "projects", Short: "Project list operations"}

	var refresh bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects shown in the views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			list := app.ProjectsCLI.List
			if refresh {
				list = app.ProjectsCLI.Refresh
			}
			out, err := list(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch out.Source {
			case "static":
				_, _ = fmt.Fprintln(w, "source: content file")
			default:
				_, _ = fmt.Fprintf(w, "source: %s, fetched %s\n", out.Source, humanize.RelTime(out.FetchedAt, time.Now(), "ago", "from now"))
			}
			if len(out.Projects) == 0 {
				_, _ = fmt.Fprintln(w, "no projects")
				return nil
			}
			for _, p := range out.Projects {
				pin := " "
				if p.Pinned {
					pin = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %s (%s)", pin, p.Name, p.ID)
				if len(p.Tech) > 0 {
					_, _ = fmt.Fprintf(w, " [%s]", strings.Join(p.Tech, ", "))
				}
				if p.GitHubURL != "" {
					_, _ = fmt.Fprintf(w, " %s", p.GitHubURL)
				}
				_, _ = fmt.Fprintln(w)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&refresh, "refresh", false, "skip the cache and refetch from GitHub")

	projects.AddCommand(listCmd)
	return projects
}

func newProfileCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the profile from the content file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Content(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			p := out.Profile
			_, _ = fmt.Fprintf(w, "%s %s\n", p.Name, p.Handle)
			if p.Title != "" {
				_, _ = fmt.Fprintln(w, p.Title)
			}
			if p.Location != "" {
				_, _ = fmt.Fprintln(w, p.Location)
			}
			if p.Email != "" {
				_, _ = fmt.Fprintf(w, "email:  %s\n", p.Email)
			}
			if p.GitHub != "" {
				_, _ = fmt.Fprintf(w, "github: %s\n", p.GitHub)
			}
			if len(out.Work) > 0 {
				_, _ = fmt.Fprintln(w, "\nwork")
				for _, job := range out.Work {
					_, _ = fmt.Fprintf(w, "  %s, %s (%s)\n", job.Role, job.Company, job.Period)
				}
			}
			if len(out.Education) > 0 {
				_, _ = fmt.Fprintln(w, "\neducation")
				for _, ed := range out.Education {
					_, _ = fmt.Fprintf(w, "  %s, %s (%s)\n", ed.Degree, ed.School, ed.Period)
				}
			}
			if len(out.TechStack) > 0 {
				labels := make([]string, 0, len(out.TechStack))
				for _, tech := range out.TechStack {
					labels = append(labels, tech.Label)
				}
				_, _ = fmt.Fprintf(w, "\nstack: %s\n", strings.Join(labels, ", "))
			}
			return nil
		},
	}
}

func newResumeCmd(flags *globalFlags) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Print the text of one résumé page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be >= 1")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Resume(cmd.Context(), page)
			if errors.Is(err, apperrors.ErrResumeUnavailable) {
				return fmt.Errorf("no résumé configured: set resume_path in folio.yaml")
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d\n\n%s\n", out.Page, out.Pages, out.Text)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newPluginCmd(flags *globalFlags) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			plugins, err := app.PluginCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n",
					p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.PluginCLI.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})
	return plugin
}
