package journal

import (
	"fmt"
	"github.com/myrjola/detectivequest/cmd/cli/app"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/models"
	"github.com/myrjola/detectivequest/internal/repositories"
	"github.com/spf13/cobra"
	"strings"
	"time"
)

var Group = &cobra.Group{
	ID:    "journal",
	Title: "Verdict journal",
}

func init() {
	History.Flags().Int("limit", repositories.DefaultListLimit, "maximum number of verdicts to show")
}

var History = &cobra.Command{
	Use:     "history",
	GroupID: "journal",
	Short:   "Show recorded verdicts",
	Long:    "Prints the verdicts recorded in the journal, newest first.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		var (
			a        *app.App
			repo     *repositories.VerdictRepository
			closeFn  func() error
			verdicts []models.Verdict
			limit    int
		)
		if a, err = app.New(cmd); err != nil {
			return err
		}
		if limit, err = cmd.Flags().GetInt("limit"); err != nil {
			return errors.Wrap(err, "read limit")
		}
		con, err := a.Console()
		if err != nil {
			return err
		}
		if repo, closeFn, err = a.Journal(cmd.Context()); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, closeFn())
		}()
		if verdicts, err = repo.List(cmd.Context(), limit); err != nil {
			return errors.Wrap(err, "list verdicts")
		}
		if len(verdicts) == 0 {
			con.Println(con.T("No verdicts recorded yet."))
			return nil
		}
		for _, v := range verdicts {
			con.Println(formatVerdict(v))
		}
		return nil
	},
}

func formatVerdict(v models.Verdict) string {
	accused := v.Accused
	if accused == "" {
		accused = "-"
	}
	return fmt.Sprintf("%s  %-22s %-12s %d/%d  %s  [%s]",
		v.CreatedAt.Local().Format(time.DateTime), v.Status, accused, v.Matches, v.Threshold, v.CaseTitle,
		strings.Join(v.Clues, "; "))
}
