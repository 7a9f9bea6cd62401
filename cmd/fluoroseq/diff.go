package main

import (
	"github.com/pmezard/go-difflib/difflib"
)

// diffText renders a unified diff between got and want, line by line.
// TestFitRecoversPerturbedErrorRate in commands_test.go uses this to show
// the fitted model's CSV against the true model's CSV when the fit fails
// to move p_edman_failure toward the truth.
func diffText(name, got, want string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: name + " (want)",
		ToFile:   name + " (got)",
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(diff)
}
