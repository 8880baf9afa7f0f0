package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// Violation kinds reported by the feature map lint.
const (
	violationDuplicateID = "duplicate-id"
	violationReservedID  = "reserved-id"
	violationInvalidID   = "invalid-id"
	violationEmptyPaths  = "empty-paths"
	violationShadowed    = "shadowed"
)

// ExecuteCheck lints the feature map and probes collaborator availability.
// It returns an error on any violation so CI pipelines get a non-zero exit.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result := BuildCheckResult(ctx, cfg, contract.NewLocalCtagsClient(), contract.NewLocalGitClient())
	if err := writer.WriteCheck(result, cfg); err != nil {
		return err
	}

	if !result.Passed {
		if len(result.Violations) > 0 {
			return fmt.Errorf("feature map %s has %d violation(s)", cfg.FeatureMapPath, len(result.Violations))
		}
		return errors.New("required tools are missing. Install universal-ctags and git")
	}
	return nil
}

// GetCheckResult builds the check result with the local collaborators.
// MCP handlers reuse this.
func GetCheckResult(ctx context.Context, cfg *contract.Config) schema.CheckResult {
	return BuildCheckResult(ctx, cfg, contract.NewLocalCtagsClient(), contract.NewLocalGitClient())
}

// BuildCheckResult lints the loaded feature map and probes the extractor and
// git collaborators.
func BuildCheckResult(ctx context.Context, cfg *contract.Config, extractor contract.ExtractorClient, git contract.GitClient) schema.CheckResult {
	result := schema.CheckResult{
		RuleCount:  len(cfg.FeatureMap.Rules),
		Violations: LintFeatureMap(cfg.FeatureMap),
	}

	if version, err := extractor.Probe(ctx); err == nil {
		result.ExtractorOK = true
		result.ExtractorVersion = version
	}
	if _, err := git.Run(ctx, cfg.ScanRoot, "rev-parse", "--git-dir"); err == nil {
		result.GitOK = true
	}

	result.Passed = len(result.Violations) == 0 && result.ExtractorOK && result.GitOK
	return result
}

// LintFeatureMap collects every structural violation in the map instead of
// stopping at the first. It applies the same rules as ValidateFeatureMap
// plus shadowing detection.
func LintFeatureMap(fm *schema.FeatureMap) []schema.CheckViolation {
	if len(fm.Rules) == 0 {
		return []schema.CheckViolation{{
			Kind:   violationEmptyPaths,
			Detail: "feature map declares no features. Add at least one entry under 'features:'",
		}}
	}

	var violations []schema.CheckViolation
	seen := make(map[string]struct{}, len(fm.Rules))
	for i, rule := range fm.Rules {
		switch {
		case rule.ID == "":
			violations = append(violations, schema.CheckViolation{
				Kind:   violationInvalidID,
				Detail: fmt.Sprintf("feature at index %d has no id", i),
			})
		case rule.ID == schema.UncategorizedID:
			violations = append(violations, schema.CheckViolation{
				RuleID: rule.ID,
				Kind:   violationReservedID,
				Detail: fmt.Sprintf("id %q is reserved for the catch-all bucket", schema.UncategorizedID),
			})
		case !contract.FeatureIDPattern.MatchString(rule.ID):
			violations = append(violations, schema.CheckViolation{
				RuleID: rule.ID,
				Kind:   violationInvalidID,
				Detail: fmt.Sprintf("id %q is not a valid slug (lowercase letters, digits, hyphens)", rule.ID),
			})
		}

		if _, dup := seen[rule.ID]; dup && rule.ID != "" {
			violations = append(violations, schema.CheckViolation{
				RuleID: rule.ID,
				Kind:   violationDuplicateID,
				Detail: fmt.Sprintf("id %q is declared more than once", rule.ID),
			})
		}
		seen[rule.ID] = struct{}{}

		if len(rule.Paths) == 0 {
			violations = append(violations, schema.CheckViolation{
				RuleID: rule.ID,
				Kind:   violationEmptyPaths,
				Detail: fmt.Sprintf("feature %q declares no path substrings", rule.ID),
			})
		}
		for _, sub := range rule.Paths {
			if sub == "" {
				violations = append(violations, schema.CheckViolation{
					RuleID: rule.ID,
					Kind:   violationEmptyPaths,
					Detail: fmt.Sprintf("feature %q has an empty path substring, which would match every file", rule.ID),
				})
			}
		}

		if detail, shadowed := shadowDetail(rule, fm.Rules[:i]); shadowed {
			violations = append(violations, schema.CheckViolation{
				RuleID: rule.ID,
				Kind:   violationShadowed,
				Detail: detail,
			})
		}
	}
	return violations
}

// shadowDetail reports whether every path substring of the rule is already
// captured by an earlier rule. Any path containing the substring also
// contains every earlier substring inside it, so a fully covered rule can
// never win classification.
func shadowDetail(rule schema.FeatureRule, earlier []schema.FeatureRule) (string, bool) {
	if len(rule.Paths) == 0 {
		return "", false
	}

	coveredBy := make([]string, 0, len(rule.Paths))
	for _, sub := range rule.Paths {
		winner := ""
		for _, prev := range earlier {
			for _, prevSub := range prev.Paths {
				if prevSub != "" && strings.Contains(sub, prevSub) {
					winner = prev.ID
					break
				}
			}
			if winner != "" {
				break
			}
		}
		if winner == "" {
			return "", false
		}
		coveredBy = append(coveredBy, winner)
	}

	return fmt.Sprintf("every path substring is matched first by earlier rules (%s)",
		strings.Join(coveredBy, ", ")), true
}
