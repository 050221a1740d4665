package domain_test

import (
	"strings"
	"testing"
	"time"
	"unicode"

	"chatgenius/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeChannelName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Random Talk ", "random-talk"},
		{"general", "general"},
		{"Dev\t\tOps  Team", "dev-ops-team"},
		{"ALL CAPS", "all-caps"},
		{"already-normal", "already-normal"},
		{"   ", ""},
	}
	for _, tc := range cases {
		got := domain.NormalizeChannelName(tc.in)
		assert.Equal(t, tc.want, got, "输入 %q", tc.in)
	}
}

func TestNormalizeChannelName_NoWhitespaceOrUpper(t *testing.T) {
	inputs := []string{"Hello World", " Mixed\nCase\tName ", "ÄÖÜ Team", "a  b   c"}
	for _, in := range inputs {
		got := domain.NormalizeChannelName(in)
		assert.False(t, strings.ContainsFunc(got, unicode.IsSpace), "结果不应包含空白: %q", got)
		assert.False(t, strings.ContainsFunc(got, unicode.IsUpper), "结果不应包含大写字母: %q", got)
	}
}

func TestChannelTopic(t *testing.T) {
	assert.Equal(t, "channel-abc", domain.ChannelTopic("abc"))
}

func TestWorkspaceInvite_IsUsable(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	inv := &domain.WorkspaceInvite{Status: domain.InviteStatusPending, ExpiresAt: now.Add(domain.InviteExpiry)}
	assert.True(t, inv.IsUsable(now))
	assert.False(t, inv.IsUsable(now.Add(domain.InviteExpiry+1)))

	inv.Status = domain.InviteStatusAccepted
	assert.False(t, inv.IsUsable(now))
}
