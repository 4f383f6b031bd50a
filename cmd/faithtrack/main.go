package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faithtrack/internal/bootstrap"
	feedbackrpc "faithtrack/internal/modules/feedback/adapter/in/rpc"
	feedbackdto "faithtrack/internal/modules/feedback/dto"
	resolutiondto "faithtrack/internal/modules/resolution/dto"
	"faithtrack/internal/platform/config"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/logging"
)

const dateLayout = "2006-01-02"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath string
	backend   string
	dsn       string
	user      string
	asOf      string
	verbose   bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "faithtrack",
		Short:         "Track resolutions and get pace feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.vaultPath, "vault", ".", "markdown vault path")
	flags.StringVar(&opts.backend, "backend", "", "resolution store: vault|sqlite|postgres")
	flags.StringVar(&opts.dsn, "dsn", "", "postgres connection string")
	flags.StringVar(&opts.user, "user", "", "profile id or email (defaults to config default_user)")
	flags.StringVar(&opts.asOf, "as-of", "", "evaluate pace as of this date (YYYY-MM-DD)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newResolutionCmd(opts))
	root.AddCommand(newPaceCmd(opts))
	root.AddCommand(newSuggestCmd(opts))
	root.AddCommand(newVerseCmd(opts))
	root.AddCommand(newDashboardCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// setup layers flags over the vault config file and builds the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.vaultPath)
	if err != nil {
		return err
	}
	if o.backend != "" {
		cfg.Backend = strings.ToLower(o.backend)
	}
	if o.dsn != "" {
		cfg.PostgresDSN = o.dsn
	}
	if o.user != "" {
		cfg.DefaultUser = o.user
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	o.cfg = cfg

	logOpts := logging.Options{Level: cfg.LogLevel}
	// The TUI owns the terminal, so its logs go to the state dir.
	if cmd.Name() == "tui" {
		logOpts.Path = cfg.LogPath
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	o.logger = logger.With(zap.String("cmd", cmd.CommandPath()))
	return nil
}

func (o *rootOptions) loadApp(ctx context.Context) (*bootstrap.App, error) {
	asOf, err := parseOptionalDate(o.asOf)
	if err != nil {
		return nil, fmt.Errorf("--as-of: %w", err)
	}
	return bootstrap.New(ctx, o.cfg, bootstrap.Options{AsOf: asOf, Logger: o.logger})
}

func (o *rootOptions) userRef() string {
	return o.cfg.DefaultUser
}

// withApp opens the app for one command and closes it afterwards.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(app *bootstrap.App) error) error {
	app, err := o.loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			o.logger.Warn("close app", zap.Error(cerr))
		}
	}()
	return fn(app)
}

// ─── profile ─────────────────────────────────────────────────────────────────

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Manage member profiles"}

	var name, email, church string
	register := &cobra.Command{
		Use:   "register",
		Short: "Register a new profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.ProfileCLI.Register(cmd.Context(), name, email, church)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s <%s> id=%s\n", out.Name, out.Email, out.ID)
				return nil
			})
		},
	}
	register.Flags().StringVar(&name, "name", "", "display name")
	register.Flags().StringVar(&email, "email", "", "email address (unique)")
	register.Flags().StringVar(&church, "church", "", "home church")
	_ = register.MarkFlagRequired("name")
	_ = register.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				profiles, err := app.ProfileCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(profiles) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no profiles")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, p := range profiles {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Church)
				}
				return tw.Flush()
			})
		},
	}

	profile.AddCommand(register, list)
	return profile
}

// ─── resolution ──────────────────────────────────────────────────────────────

func newResolutionCmd(opts *rootOptions) *cobra.Command {
	resolution := &cobra.Command{Use: "resolution", Aliases: []string{"res"}, Short: "Manage resolutions"}
	resolution.AddCommand(
		newResolutionCreateCmd(opts),
		newResolutionListCmd(opts),
		newResolutionShowCmd(opts),
		newResolutionUpdateCmd(opts),
		newResolutionDeleteCmd(opts),
		newResolutionLogCmd(opts),
	)
	return resolution
}

func newResolutionCreateCmd(opts *rootOptions) *cobra.Command {
	var title, description, category, unit, deadline string
	var target float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a resolution for the current user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			due, err := time.Parse(dateLayout, deadline)
			if err != nil {
				return fmt.Errorf("%w: deadline must be YYYY-MM-DD", apperrors.ErrInvalidInput)
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.ResolutionCLI.Create(cmd.Context(), opts.userRef(), title, description, category, target, unit, due)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) target=%s %s due=%s\n",
					out.Title, out.ID, humanize.Commaf(out.Target), out.Unit, out.Deadline.Format(dateLayout))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "resolution title")
	cmd.Flags().StringVar(&description, "description", "", "why this matters")
	cmd.Flags().StringVar(&category, "category", "spiritual", "financial|spiritual|custom")
	cmd.Flags().Float64Var(&target, "target", 0, "target amount")
	cmd.Flags().StringVar(&unit, "unit", "", "unit label (spiritual defaults to chapters)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newResolutionListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the current user's resolutions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				items, err := app.ResolutionCLI.List(cmd.Context(), opts.userRef())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no resolutions")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, r := range items {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s / %s %s\t%s\n", r.ID, r.Category, r.Title,
						humanize.Commaf(r.Current), humanize.Commaf(r.Target), r.Unit, r.Deadline.Format(dateLayout))
				}
				return tw.Flush()
			})
		},
	}
}

func newResolutionShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a resolution with its pace report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				detail, err := app.FeedbackCLI.Detail(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printDetail(cmd.OutOrStdout(), detail)
				return nil
			})
		},
	}
}

func newResolutionUpdateCmd(opts *rootOptions) *cobra.Command {
	var title, description, category, unit, deadline string
	var target float64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a resolution; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := resolutiondto.UpdateInput{ID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				input.Title = &title
			}
			if flags.Changed("description") {
				input.Description = &description
			}
			if flags.Changed("category") {
				input.Category = &category
			}
			if flags.Changed("target") {
				input.Target = &target
			}
			if flags.Changed("unit") {
				input.Unit = &unit
			}
			if flags.Changed("deadline") {
				due, err := time.Parse(dateLayout, deadline)
				if err != nil {
					return fmt.Errorf("%w: deadline must be YYYY-MM-DD", apperrors.ErrInvalidInput)
				}
				input.Deadline = &due
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.ResolutionCLI.Update(cmd.Context(), input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "resolution title")
	cmd.Flags().StringVar(&description, "description", "", "why this matters")
	cmd.Flags().StringVar(&category, "category", "", "financial|spiritual|custom")
	cmd.Flags().Float64Var(&target, "target", 0, "target amount")
	cmd.Flags().StringVar(&unit, "unit", "", "unit label")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	return cmd
}

func newResolutionDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resolution and its progress log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				if err := app.ResolutionCLI.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newResolutionLogCmd(opts *rootOptions) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "log <id> <amount>",
		Short: "Log progress towards a resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.ResolutionCLI.LogProgress(cmd.Context(), args[0], amount, note)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s: %s now at %s of %s\n",
					humanize.Commaf(amount), out.Unit, out.Title, humanize.Commaf(out.Current), humanize.Commaf(out.Target))
				report, err := app.FeedbackCLI.Analyze(cmd.Context(), out.ID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Message)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	return cmd
}

// ─── feedback ────────────────────────────────────────────────────────────────

func newPaceCmd(opts *rootOptions) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "pace <id>",
		Short: "Analyze a resolution's pace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote != "" {
				client, err := feedbackrpc.Dial(remote)
				if err != nil {
					return err
				}
				defer client.Close()
				report, err := client.Analyze(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				report, err := app.FeedbackCLI.Analyze(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "query a running `faithtrack serve` at host:port")
	return cmd
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <id>",
		Short: "Suggest next steps for a resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.FeedbackCLI.Suggest(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", out.Status)
				for _, s := range out.Suggestions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", s)
				}
				return nil
			})
		},
	}
}

func newVerseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verse [category]",
		Short: "Print an encouraging verse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				v, err := app.FeedbackCLI.Verse(cmd.Context(), category)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%q\n  %s\n", v.Text, v.Reference)
				return nil
			})
		},
	}
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the current user's resolutions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				out, err := app.FeedbackCLI.Dashboard(cmd.Context(), opts.userRef())
				if err != nil {
					return err
				}
				printDashboard(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

// ─── surfaces ────────────────────────────────────────────────────────────────

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feedback engine over gRPC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				opts.cfg.GRPCAddr = addr
			}
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				return bootstrap.Serve(cmd.Context(), app)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config grpc_addr)")
	return cmd
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the faithtrack terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(cmd.Context(), app, opts.userRef())
			})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Vault configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			path, err := config.Save(opts.cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cfgCmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

// parseAmount enforces the form rule that logged amounts are positive.
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrInvalidInput, raw)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidInput)
	}
	return amount, nil
}

func printReport(w io.Writer, r feedbackdto.ReportOutput) {
	_, _ = fmt.Fprintf(w, "%s [%s] %d%%\n", r.Title, r.Status, r.PercentComplete)
	_, _ = fmt.Fprintln(w, r.Message)
	if p := r.Pace; p != nil {
		_, _ = fmt.Fprintf(w, "day %d of %d, %d left\n", p.DaysElapsed, p.TotalDays, p.DaysLeft)
		_, _ = fmt.Fprintf(w, "pace %.2f %s/day, need %.2f %s/day\n", p.CurrentPace, r.Unit, p.RequiredPace, r.Unit)
		_, _ = fmt.Fprintf(w, "projected finish: %s\n", p.ProjectedFinish)
	}
}

func printDetail(w io.Writer, d feedbackdto.DetailOutput) {
	printReport(w, d.Report)
	if d.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", d.Description)
	}
	_, _ = fmt.Fprintf(w, "\n%s / %s %s, due %s\n",
		humanize.Commaf(d.Progress.Current), humanize.Commaf(d.Progress.Target), d.Progress.Unit, d.Deadline.Format(dateLayout))
	if len(d.Suggestions) > 0 {
		_, _ = fmt.Fprintln(w, "\nsuggestions:")
		for _, s := range d.Suggestions {
			_, _ = fmt.Fprintf(w, "- %s\n", s)
		}
	}
	if len(d.Entries) > 0 {
		_, _ = fmt.Fprintln(w, "\nlog:")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range d.Entries {
			_, _ = fmt.Fprintf(tw, "%s\t+%s\t%s\n", e.Date.Format(dateLayout), humanize.Commaf(e.Amount), e.Note)
		}
		_ = tw.Flush()
	}
	_, _ = fmt.Fprintf(w, "\n%q\n  %s\n", d.Verse.Text, d.Verse.Reference)
}

func printDashboard(w io.Writer, d feedbackdto.DashboardOutput) {
	if d.Total == 0 {
		_, _ = fmt.Fprintln(w, "no resolutions")
		return
	}
	_, _ = fmt.Fprintf(w, "%d resolutions, average %d%%, %d completed, %d on pace\n\n",
		d.Total, d.AvgProgress, d.Completed, d.OnPace)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range d.Categories {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d%%\n", c.Category, c.Count, c.AvgProgress)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range d.Resolutions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\n", r.ResolutionID, r.Title, r.Percent, r.Status)
	}
	_ = tw.Flush()
}
