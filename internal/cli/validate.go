package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auditkit/navaudit/internal/policy"
)

// PolicyResult is the JSON payload of a successful validate run.
type PolicyResult struct {
	Valid          bool `json:"valid"`
	Roles          int  `json:"roles"`
	AdminRoutes    int  `json:"admin_routes"`
	InferenceRules int  `json:"inference_rules"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <policy-file>",
		Short: "Validate a CUE policy file",
		Long: `Compile a CUE policy file without running an audit.

Checks syntax, field types, and referential rules (match kinds, required
names and paths) and reports the effective table sizes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := policy.LoadFile(path)
	if err != nil {
		var cerr *policy.CompileError
		if errors.As(err, &cerr) {
			_ = formatter.Error("POLICY_INVALID", cerr.Message, cerr.Field)
			return WrapExitError(ExitFailure, "policy validation failed", err)
		}
		_ = formatter.Error("POLICY_UNREADABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading policy", err)
	}

	result := PolicyResult{
		Valid:          true,
		Roles:          len(cfg.Roles),
		AdminRoutes:    len(cfg.AdminRoutes),
		InferenceRules: len(cfg.InferenceRules),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Policy valid: %d roles, %d admin routes, %d inference rules\n",
		result.Roles, result.AdminRoutes, result.InferenceRules)
	return nil
}
