package main

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jask/docqa/internal/secrets"
)

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage stored LLM provider API keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <provider>",
			Short: "Store a key read from stdin",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := secrets.Default()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s api key: ", args[0])
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && strings.TrimSpace(line) == "" {
					return errors.Wrap(err, "read key")
				}
				return store.Set(args[0], line)
			},
		},
		&cobra.Command{
			Use:   "delete <provider>",
			Short: "Remove a stored key",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				store, err := secrets.Default()
				if err != nil {
					return err
				}
				return store.Delete(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List providers with a stored key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := secrets.Default()
				if err != nil {
					return err
				}
				providers, err := store.Providers()
				if err != nil {
					return err
				}
				sort.Strings(providers)
				for _, p := range providers {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			},
		},
	)
	return cmd
}
