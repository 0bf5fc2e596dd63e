package policy

import (
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/rbac"
)

// validMatchKinds gates the kind strings accepted in inference rules.
var validMatchKinds = map[rbac.MatchKind]bool{
	rbac.MatchPathPrefix:   true,
	rbac.MatchClassKeyword: true,
	rbac.MatchAriaKeyword:  true,
}

// LoadFile reads and compiles a .cue policy file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	return Compile(data, path)
}

// Compile parses CUE source and compiles its top-level `policy` block.
// Uses the CUE SDK's Go API directly, not a CLI subprocess.
func Compile(src []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pv := v.LookupPath(cue.ParsePath("policy"))
	if !pv.Exists() {
		return nil, &CompileError{
			Field:   "policy",
			Message: "top-level policy block is required",
			Pos:     v.Pos(),
		}
	}
	return CompilePolicy(pv)
}

// CompilePolicy parses a CUE value holding the policy struct. Every
// section is optional; missing sections keep the built-in defaults.
func CompilePolicy(v cue.Value) (*Config, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := Default()

	if err := parseThresholds(v, cfg); err != nil {
		return nil, err
	}

	roles, err := parseRoles(v)
	if err != nil {
		return nil, err
	}
	if roles != nil {
		cfg.Roles = roles
	}

	routes, err := parseRoutes(v)
	if err != nil {
		return nil, err
	}
	if routes != nil {
		cfg.AdminRoutes = routes
	}

	rules, err := parseRules(v)
	if err != nil {
		return nil, err
	}
	if rules != nil {
		cfg.InferenceRules = rules
	}

	return cfg, nil
}

func parseThresholds(v cue.Value, cfg *Config) error {
	tv := v.LookupPath(cue.ParsePath("thresholds"))
	if !tv.Exists() {
		return nil
	}

	if sv := tv.LookupPath(cue.ParsePath("min_touch_target_size")); sv.Exists() {
		f, err := sv.Float64()
		if err != nil {
			return formatCUEError(err)
		}
		if f <= 0 {
			return &CompileError{
				Field:   "thresholds.min_touch_target_size",
				Message: "must be positive",
				Pos:     sv.Pos(),
			}
		}
		cfg.Thresholds.MinTouchTargetSize = f
	}

	if sv := tv.LookupPath(cue.ParsePath("min_spacing")); sv.Exists() {
		f, err := sv.Float64()
		if err != nil {
			return formatCUEError(err)
		}
		if f < 0 {
			return &CompileError{
				Field:   "thresholds.min_spacing",
				Message: "must not be negative",
				Pos:     sv.Pos(),
			}
		}
		cfg.Thresholds.MinSpacing = f
	}

	if sv := tv.LookupPath(cue.ParsePath("response_time_threshold_ms")); sv.Exists() {
		ms, err := sv.Int64()
		if err != nil {
			return formatCUEError(err)
		}
		if ms <= 0 {
			return &CompileError{
				Field:   "thresholds.response_time_threshold_ms",
				Message: "must be positive",
				Pos:     sv.Pos(),
			}
		}
		cfg.Thresholds.ResponseTimeThreshold = time.Duration(ms) * time.Millisecond
	}

	return nil
}

// parseRoles returns nil (keep defaults) when the section is absent.
func parseRoles(v cue.Value) ([]element.UserRole, error) {
	rv := v.LookupPath(cue.ParsePath("roles"))
	if !rv.Exists() {
		return nil, nil
	}

	iter, err := rv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	roles := []element.UserRole{}
	for iter.Next() {
		item := iter.Value()

		name, err := item.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "roles.name",
				Message: "role name is required",
				Pos:     item.Pos(),
			}
		}

		perms, err := parseStringList(item, "permissions")
		if err != nil {
			return nil, err
		}

		roles = append(roles, element.UserRole{Name: name, Permissions: perms})
	}
	return roles, nil
}

func parseRoutes(v cue.Value) ([]element.AdminRoute, error) {
	rv := v.LookupPath(cue.ParsePath("admin_routes"))
	if !rv.Exists() {
		return nil, nil
	}

	iter, err := rv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	routes := []element.AdminRoute{}
	for iter.Next() {
		item := iter.Value()

		path, err := item.LookupPath(cue.ParsePath("path")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "admin_routes.path",
				Message: "route path is required",
				Pos:     item.Pos(),
			}
		}

		perms, err := parseStringList(item, "required_permissions")
		if err != nil {
			return nil, err
		}

		protected := false
		if pv := item.LookupPath(cue.ParsePath("protected")); pv.Exists() {
			protected, err = pv.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
		}

		routes = append(routes, element.AdminRoute{
			Path:                path,
			RequiredPermissions: perms,
			IsProtected:         protected,
		})
	}
	return routes, nil
}

func parseRules(v cue.Value) ([]rbac.InferenceRule, error) {
	rv := v.LookupPath(cue.ParsePath("inference_rules"))
	if !rv.Exists() {
		return nil, nil
	}

	iter, err := rv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	rules := []rbac.InferenceRule{}
	for iter.Next() {
		item := iter.Value()

		kind, err := item.LookupPath(cue.ParsePath("kind")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "inference_rules.kind",
				Message: "rule kind is required",
				Pos:     item.Pos(),
			}
		}
		if !validMatchKinds[rbac.MatchKind(kind)] {
			return nil, &CompileError{
				Field:   "inference_rules.kind",
				Message: fmt.Sprintf("unknown match kind: %q", kind),
				Pos:     item.Pos(),
			}
		}

		pattern, err := item.LookupPath(cue.ParsePath("pattern")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "inference_rules.pattern",
				Message: "rule pattern is required",
				Pos:     item.Pos(),
			}
		}

		perm, err := item.LookupPath(cue.ParsePath("permission")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "inference_rules.permission",
				Message: "rule permission is required",
				Pos:     item.Pos(),
			}
		}

		rules = append(rules, rbac.InferenceRule{
			Kind:       rbac.MatchKind(kind),
			Pattern:    pattern,
			Permission: perm,
		})
	}
	return rules, nil
}

func parseStringList(v cue.Value, field string) ([]string, error) {
	lv := v.LookupPath(cue.ParsePath(field))
	if !lv.Exists() {
		return []string{}, nil
	}

	iter, err := lv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	out := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError is a policy compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
