package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/spf13/cobra"
)

var transitionsRole string

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "Print the transition table",
	Long:  "Lists every row of the workflow: source status, role, action, target status and side effects.",
	RunE:  runTransitions,
}

func init() {
	transitionsCmd.Flags().StringVarP(&transitionsRole, "role", "r", "", "Only show rows this role may fire")
}

func runTransitions(cmd *cobra.Command, args []string) error {
	role := domain.Role(transitionsRole)
	if transitionsRole != "" && !role.IsValid() {
		return fmt.Errorf("unknown role %q", transitionsRole)
	}

	rows := workflow.MustDefault().Rows()
	if transitionsRole != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Role == role {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return writeTransitions(cmd.OutOrStdout(), rows)
}

func writeTransitions(out io.Writer, rows []workflow.Transition) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tROLE\tACTION\tTO\tREMARKS\tDOCUMENT\tNOTIFY")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.From, row.Role, row.Action, row.To,
			yesNo(row.RemarksRequired), dashIfEmpty(string(row.Document)), describeNotify(row.Notify))
	}
	return w.Flush()
}

func describeNotify(n *workflow.Notification) string {
	if n == nil {
		return "-"
	}
	var target string
	switch n.Target.Kind {
	case domain.TargetUser:
		target = "user " + n.Target.UserID
	case domain.TargetRole:
		target = string(n.Target.Role)
	default:
		target = "all"
	}
	return n.Template + " -> " + target
}

func yesNo(b bool) string {
	if b {
		return "required"
	}
	return "optional"
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
