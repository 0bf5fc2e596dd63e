package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
	"github.com/auditkit/navaudit/internal/livedom"
	"github.com/auditkit/navaudit/internal/policy"
	"github.com/auditkit/navaudit/internal/report"
	"github.com/auditkit/navaudit/internal/snapshot"
	"github.com/auditkit/navaudit/internal/staticdom"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Snapshot string
	HTML     string
	URL      string
	Policy   string
	Summary  bool
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit navigation elements from a page, file, or snapshot",
		Long: `Run the full audit suite against one input source.

Exactly one of --url, --html, or --snapshot selects the source:
  --url       live page over a headless browser (full coverage)
  --html      static HTML file (attribute and evidence rules only)
  --snapshot  recorded YAML snapshot (replays captured styles and geometry)

Example:
  navaudit audit --snapshot captures/main-nav.yaml --format json
  navaudit audit --url https://staging.example.com --policy policy.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "path to a recorded snapshot YAML")
	cmd.Flags().StringVar(&opts.HTML, "html", "", "path to a static HTML file")
	cmd.Flags().StringVar(&opts.URL, "url", "", "URL to audit in a headless browser")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "path to a CUE policy file")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "emit the summary digest instead of the full report (json only)")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})))

	ins, elements, cleanup, err := openSource(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := policy.Default()
	if opts.Policy != "" {
		cfg, err = policy.LoadFile(opts.Policy)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading policy", err)
		}
	}

	auditor := report.NewAuditor(ins)
	cfg.Apply(auditor)

	rep := auditor.Run(elements)

	if opts.Format == "json" {
		marshal := report.MarshalReport
		if opts.Summary {
			marshal = report.MarshalSummary
		}
		out, err := marshal(rep)
		if err != nil {
			return WrapExitError(ExitCommandError, "encoding report", err)
		}
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return WrapExitError(ExitCommandError, "writing report", err)
		}
	} else {
		renderText(cmd.OutOrStdout(), rep)
	}

	if rep.Summary.FailedElements > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d elements failed", rep.Summary.FailedElements, rep.Summary.TotalElements))
	}
	return nil
}

// openSource resolves the selected input flag into an inspector and
// element list. The returned cleanup releases any held resources.
func openSource(opts *AuditOptions) (inspect.Inspector, []element.NavigationElement, func(), error) {
	noop := func() {}

	selected := 0
	for _, flag := range []string{opts.Snapshot, opts.HTML, opts.URL} {
		if flag != "" {
			selected++
		}
	}
	if selected != 1 {
		return nil, nil, noop, NewExitError(ExitCommandError,
			"exactly one of --url, --html, or --snapshot is required")
	}

	switch {
	case opts.Snapshot != "":
		snap, err := snapshot.Load(opts.Snapshot)
		if err != nil {
			return nil, nil, noop, WrapExitError(ExitCommandError, "loading snapshot", err)
		}
		return snap.Inspector(), snap.NavigationElements(), noop, nil

	case opts.HTML != "":
		adapter, err := staticdom.ParseFile(opts.HTML)
		if err != nil {
			return nil, nil, noop, WrapExitError(ExitCommandError, "parsing HTML", err)
		}
		return adapter, adapter.Elements(), noop, nil

	default:
		session, err := livedom.Open(opts.URL, livedom.Options{})
		if err != nil {
			return nil, nil, noop, WrapExitError(ExitCommandError, "opening page", err)
		}
		return session.Adapter, session.Adapter.Elements(), session.Close, nil
	}
}

// renderText writes the human-readable report view.
func renderText(w io.Writer, rep element.AuditReport) {
	fmt.Fprintf(w, "Audit %s\n\n", rep.RunToken)
	fmt.Fprintf(w, "Elements:         %d total, %d passed, %d failed\n",
		rep.Summary.TotalElements, rep.Summary.PassedElements, rep.Summary.FailedElements)
	fmt.Fprintf(w, "Accessibility:    %d touch-target failures, %d ARIA violations\n",
		rep.Accessibility.Summary.TouchTargetFail, rep.Accessibility.Summary.AriaViolations)
	fmt.Fprintf(w, "Role-based:       %d/%d tests passed\n",
		rep.RoleBased.Summary.PassedTests, rep.RoleBased.Summary.TotalTests)
	fmt.Fprintf(w, "Admin navigation: %d elements, %d config issues\n",
		rep.AdminNav.Summary.TotalElements, rep.AdminNav.Summary.ConfigIssueCount)
	fmt.Fprintf(w, "Visual feedback:  hover %d, focus %d, loading %d (mean response %s)\n",
		rep.VisualFeedback.Summary.HoverFeedback, rep.VisualFeedback.Summary.FocusFeedback,
		rep.VisualFeedback.Summary.LoadingFeedback, rep.VisualFeedback.Summary.MeanResponseTime)

	if len(rep.Summary.TopIssues) > 0 {
		fmt.Fprintf(w, "\nTop issues:\n")
		for _, issue := range rep.Summary.TopIssues {
			fmt.Fprintf(w, "  %dx %s\n", issue.Count, issue.Issue)
		}
	}
}
