package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryCICD, true},
		{CategoryScaffolds, true},
		{CategoryAgents, true},
		{Category("drafts"), false},
		{Category(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.IsValid(), string(tt.category))
	}
}

func TestCategoryRequiresStructure(t *testing.T) {
	assert.True(t, CategoryCICD.RequiresStructure())
	assert.True(t, CategoryScaffolds.RequiresStructure())
	assert.False(t, CategoryAgents.RequiresStructure())
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, SeverityError.IsValid())
	assert.True(t, SeverityWarning.IsValid())
	assert.True(t, SeverityInfo.IsValid())
	assert.False(t, Severity("fatal").IsValid())
}

func TestLintIssueIsBlocking(t *testing.T) {
	err := LintIssue{Severity: SeverityError}
	warn := LintIssue{Severity: SeverityWarning}
	info := LintIssue{Severity: SeverityInfo}

	assert.True(t, err.IsBlocking(false))
	assert.True(t, err.IsBlocking(true))
	assert.False(t, warn.IsBlocking(false))
	assert.True(t, warn.IsBlocking(true))
	assert.False(t, info.IsBlocking(true))
}

func TestSyncRunIsFinished(t *testing.T) {
	run := SyncRun{}
	assert.False(t, run.IsFinished())
}
