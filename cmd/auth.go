package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gamepanel/credentials"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored panel tokens",
	}

	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newStatusCmd(a))
	cmd.AddCommand(newListCmd(a))

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store a personal access token in the keyring",
		Long: `Store a personal access token for the configured panel in the system keyring.

The token is taken from --token, or read from stdin when the flag is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostname, err := a.requireHostname()
			if err != nil {
				return err
			}

			token := strings.TrimSpace(a.token)
			if token == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Paste token: ")
				line, err := bufio.NewReader(a.stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return errors.New("no token given")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Save(hostname, token); err != nil {
				return err
			}

			a.logger.Info().Str("hostname", hostname).Msg("Token stored")
			fmt.Fprintf(cmd.OutOrStdout(), "Stored token for %s\n", hostname)
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token for the configured panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostname, err := a.requireHostname()
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Delete(hostname); err != nil {
				if errors.Is(err, credentials.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", hostname)
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", hostname)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which token is used for the configured panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostname, err := a.requireHostname()
			if err != nil {
				return err
			}

			token, source, err := a.resolveToken(hostname)
			if err != nil {
				return err
			}

			status := map[string]any{
				"hostname": hostname,
				"source":   source,
				"token":    maskToken(token.BearerToken()),
			}

			info, err := credentials.Inspect(token.BearerToken())
			switch {
			case errors.Is(err, credentials.ErrOpaqueToken):
				status["type"] = "opaque"
			case err != nil:
				return err
			default:
				status["type"] = "jwt"
				status["subject"] = info.Subject
				if info.TokenID != "" {
					status["token_id"] = info.TokenID
				}
				if len(info.Scopes) > 0 {
					scopes := make([]any, len(info.Scopes))
					for i, scope := range info.Scopes {
						scopes[i] = scope
					}
					status["scopes"] = scopes
				}
				if !info.IssuedAt.IsZero() {
					status["issued_at"] = info.IssuedAt.UTC().Format(time.RFC3339)
				}
				if !info.ExpiresAt.IsZero() {
					status["expires_at"] = info.ExpiresAt.UTC().Format(time.RFC3339)
				}
				status["expired"] = info.Expired(time.Now())
			}

			return a.write(cmd, status)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the panels with a token in the keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			hosts, err := store.Hostnames()
			if err != nil {
				return err
			}

			panels := make([]any, len(hosts))
			for i, host := range hosts {
				panels[i] = host
			}
			return a.write(cmd, panels)
		},
	}
}

func (a *app) requireHostname() (string, error) {
	hostname := strings.TrimSpace(a.cfg.Panel.Hostname)
	if hostname == "" {
		return "", errors.New("no panel hostname configured (use --hostname, panel.hostname or GAMEPANEL_PANEL_HOSTNAME)")
	}
	return hostname, nil
}

// maskToken keeps the first and last four characters of long tokens
func maskToken(token string) string {
	if len(token) < 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
