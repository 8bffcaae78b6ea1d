package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/statemod/internal/manifest"
)

// manifestConfig returns the signing config, asking for the secret when
// none is configured.
func (c *Cli) manifestConfig() (manifest.Config, error) {
	secret := c.settings.Manifest.Secret
	if secret == "" {
		var err error
		secret, err = c.io.ReadPassword("Manifest secret: ")
		if err != nil {
			return manifest.Config{}, fmt.Errorf("failed to read secret: %w", err)
		}
	}
	return manifest.Config{
		Secret: []byte(secret),
		TTL:    c.settings.Manifest.TTL,
	}, nil
}

func (c *Cli) manifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Sign and verify the checksums of data set files",
	}

	sign := &cobra.Command{
		Use:   "sign <manifest> <component>=<file>...",
		Short: "Write a signed manifest of the files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[0]
			dir, err := filepath.Abs(filepath.Dir(out))
			if err != nil {
				return fmt.Errorf("failed to resolve manifest dir: %w", err)
			}

			entries := make([]manifest.Entry, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, path, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected <component>=<file>, got %q", arg)
				}
				comp, err := parseComponent(name)
				if err != nil {
					return err
				}

				entry, err := manifest.NewEntry(path, comp.String())
				if err != nil {
					return err
				}
				// Пути хранятся относительно манифеста
				if abs, err := filepath.Abs(path); err == nil {
					if rel, err := filepath.Rel(dir, abs); err == nil {
						entry.Path = filepath.ToSlash(rel)
					}
				}
				entries = append(entries, entry)
			}

			cfg, err := c.manifestConfig()
			if err != nil {
				return err
			}

			token, err := manifest.Sign(cfg, entries)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, []byte(token+"\n"), 0o644); err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}

			c.printf("Signed %d files into %s\n", len(entries), out)
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <manifest>",
		Short: "Check the signature and the file checksums of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}

			cfg, err := c.manifestConfig()
			if err != nil {
				return err
			}

			claims, err := manifest.Verify(cfg, strings.TrimSpace(string(data)), filepath.Dir(args[0]))
			if err != nil {
				return err
			}

			for _, e := range claims.Files {
				c.line(fmt.Sprintf("ok  %-18s %s", e.Component, e.Path))
			}
			c.printf("Manifest %s: %d files verified\n", args[0], len(claims.Files))
			return nil
		},
	}

	cmd.AddCommand(sign, verify)
	return cmd
}
