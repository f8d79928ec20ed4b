package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <repo-id>",
		Short: "Commit all changes in a registered repository and push them",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommit,
	}
	cmd.Flags().StringP("message", "m", "", "Commit message")
	return cmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	repoID := args[0]
	message, _ := cmd.Flags().GetString("message")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.coordinator(cmd.Context(), nil)
	c.Run(c.LoadRepos())
	if err := operationError(c.Snapshot()); err != nil {
		return err
	}

	if !c.SetCommitMessage(repoID, message) {
		return fmt.Errorf("repository %q is not registered", repoID)
	}
	c.Run(c.CommitAndPush(repoID))

	snap := c.Snapshot()
	if err := fieldError("message", snap.CommitInputs[repoID].Field); err != nil {
		return err
	}
	if err := operationError(snap); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), snap.InfoMessage)
	return nil
}
