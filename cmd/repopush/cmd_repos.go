package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"repopush/internal/domain"
	"repopush/internal/repourl"
)

func newReposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List or register repositories",
	}
	cmd.AddCommand(newReposListCmd(), newReposAddCmd())
	return cmd
}

func newReposListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered repositories",
		Args:  cobra.NoArgs,
		RunE:  runReposList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runReposList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.coordinator(cmd.Context(), nil)
	c.Run(c.LoadRepos())

	snap := c.Snapshot()
	if err := operationError(snap); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Repos)
	}
	if len(snap.Repos) == 0 {
		fmt.Fprintln(out, "no repositories registered")
		return nil
	}
	return writeRepoTable(out, snap.Repos, s.cfg.UI.ShowPaths)
}

func writeRepoTable(out io.Writer, repos []domain.RepoSummary, showPaths bool) error {
	headers := []string{"ID", "PROJECT", "REPOSITORY", "BRANCH"}
	if showPaths {
		headers = append(headers, "PATH", "COMMIT SCOPE")
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range repos {
		row := []string{r.ID, r.Project, r.Repository, r.Branch}
		if showPaths {
			row = append(row, r.Path, r.YearBranchPath)
		}
		tbl.Row(row...)
	}

	_, err := fmt.Fprintln(out, tbl.Render())
	return err
}

func newReposAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Register a repository by URL",
		Args:  cobra.ExactArgs(1),
		RunE:  runReposAdd,
	}
	cmd.Flags().StringP("branch", "b", "", "Branch to track (default: taken from the URL or the backend default)")
	return cmd
}

func runReposAdd(cmd *cobra.Command, args []string) error {
	branch, _ := cmd.Flags().GetString("branch")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if preview := repourl.Preview(args[0], branch); preview != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "registering %s\n", preview)
	}

	c := s.coordinator(cmd.Context(), nil)
	c.SetRepoURL(args[0])
	c.SetRepoBranch(branch)
	c.Run(c.AddRepo())

	snap := c.Snapshot()
	if err := fieldError("url", snap.RepoForm.URL); err != nil {
		return err
	}
	if err := operationError(snap); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), snap.InfoMessage)
	return nil
}
