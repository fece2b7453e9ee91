package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTransitions(t *testing.T) {
	var buf bytes.Buffer
	rows := workflow.MustDefault().Rows()
	require.NoError(t, writeTransitions(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(rows)+1)
	assert.True(t, strings.HasPrefix(lines[0], "FROM"))
	assert.Contains(t, buf.String(), string(workflow.ActionApprove))
	assert.Contains(t, buf.String(), workflow.TemplatePlanRejected+" -> "+string(domain.RoleReception))
}

func TestRunTransitions_RoleFilter(t *testing.T) {
	t.Cleanup(func() { transitionsRole = "" })

	t.Run("unknown role fails", func(t *testing.T) {
		transitionsRole = "Janitor"
		err := runTransitions(transitionsCmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})

	t.Run("filters rows by role", func(t *testing.T) {
		var buf bytes.Buffer
		transitionsCmd.SetOut(&buf)
		t.Cleanup(func() { transitionsCmd.SetOut(nil) })

		transitionsRole = string(domain.RoleCommittee)
		require.NoError(t, runTransitions(transitionsCmd, nil))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		expected := 0
		for _, row := range workflow.MustDefault().Rows() {
			if row.Role == domain.RoleCommittee {
				expected++
			}
		}
		require.Len(t, lines, expected+1)
		for _, line := range lines[1:] {
			assert.Contains(t, line, string(domain.RoleCommittee))
		}
	})
}

func TestDescribeNotify(t *testing.T) {
	assert.Equal(t, "-", describeNotify(nil))
	assert.Equal(t, "X -> all", describeNotify(&workflow.Notification{Template: "X", Target: domain.BroadcastTarget()}))
	assert.Equal(t, "X -> user u1", describeNotify(&workflow.Notification{Template: "X", Target: domain.UserTarget("u1")}))
}

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := memory.NewStore().Provider()
	userSvc := services.NewUserService(repos.UserRepo)

	nu := newUser{Username: "planner", Password: "correct-horse-battery", Role: domain.RolePlanning}

	require.NoError(t, ensureUser(ctx, repos.UserRepo, userSvc, nu, logger))
	created, err := repos.UserRepo.FindUserByUsername(ctx, "planner")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePlanning, created.Role)
	assert.Equal(t, "planner", created.Name)

	// second call is a no-op
	require.NoError(t, ensureUser(ctx, repos.UserRepo, userSvc, nu, logger))
	users, err := repos.UserRepo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	err = ensureUser(ctx, repos.UserRepo, userSvc, newUser{Username: "nopass", Role: domain.RoleDirector}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}
