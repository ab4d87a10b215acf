package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/inventory/internal/config"
	"github.com/jask/inventory/internal/secrets"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write configuration",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(c.cfg, path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), c.cfg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database.path        %s\n", c.cfg.Database.Path)
			fmt.Fprintf(out, "database.driver      %s\n", c.cfg.Database.Driver)
			fmt.Fprintf(out, "ui.currency_symbol   %s\n", c.cfg.UI.CurrencySymbol)
			fmt.Fprintf(out, "ui.stop_timeout      %s\n", c.cfg.UI.StopTimeout)
			fmt.Fprintf(out, "notify.redis_addr    %s\n", c.cfg.Notify.RedisAddr)
			fmt.Fprintf(out, "notify.channel       %s\n", c.cfg.Notify.Channel)
			fmt.Fprintf(out, "log.file             %s\n", c.cfg.Log.File)
			return nil
		},
	}
	var remove bool
	passwordCmd := &cobra.Command{
		Use:   "redis-password",
		Short: "Store the Redis password outside the config file (read from stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := secrets.DefaultStore()
			if err != nil {
				return err
			}
			if remove {
				if err := store.Delete(secrets.RedisPassword); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Removed stored Redis password")
				return nil
			}
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return fmt.Errorf("no password on stdin")
			}
			if err := store.Put(secrets.RedisPassword, password); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Stored Redis password in %s", store.Dir)
			return nil
		},
	}
	passwordCmd.Flags().BoolVar(&remove, "clear", false, "remove the stored password")

	cmd.AddCommand(initCmd, showCmd, passwordCmd)
	return cmd
}
