package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newPatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pat",
		Short: "Inspect or replace the personal access token",
	}
	cmd.AddCommand(newPatStatusCmd(), newPatSetCmd())
	return cmd
}

func newPatStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a PAT is configured",
		Args:  cobra.NoArgs,
		RunE:  runPatStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runPatStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.coordinator(cmd.Context(), nil)
	c.Run(c.LoadPat())

	snap := c.Snapshot()
	if err := operationError(snap); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.PatStatus)
	}
	if snap.PatStatus.Configured {
		fmt.Fprintf(out, "configured: %s\n", snap.PatStatus.MaskedPat)
	} else {
		fmt.Fprintln(out, "not configured")
	}
	return nil
}

func newPatSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Store a new PAT (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPatSet,
	}
}

func runPatSet(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		var err error
		token, err = readToken(cmd)
		if err != nil {
			return err
		}
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.coordinator(cmd.Context(), nil)
	c.SetPat(token)
	c.Run(c.SavePat())

	snap := c.Snapshot()
	if err := fieldError("pat", snap.PatForm.Pat); err != nil {
		return err
	}
	if err := operationError(snap); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), snap.InfoMessage)
	fmt.Fprintf(cmd.OutOrStdout(), "configured: %s\n", snap.PatStatus.MaskedPat)
	return nil
}

// readToken prompts without echo on a terminal, otherwise reads one line
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "PAT: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
