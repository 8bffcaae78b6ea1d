package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iudanet/statemod/internal/checksum"
	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
	"github.com/iudanet/statemod/internal/storage"
	"github.com/iudanet/statemod/internal/storage/sqlite"
)

// withCatalog opens the catalog database for the duration of fn.
func (c *Cli) withCatalog(ctx context.Context, fn func(storage.CatalogStorage) error) error {
	s, err := sqlite.New(ctx, c.settings.Workspace.Catalog)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			c.logger.Error("failed to close catalog database", "error", err)
		}
	}()
	return fn(s)
}

func (c *Cli) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Keep a catalog of data files and the records they hold",
	}

	add := &cobra.Command{
		Use:   "add <component> <file>",
		Short: "Register a data file and its records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}
			path := filepath.Clean(args[1])

			df, err := c.readFile(comp, path, models.NewDataSet())
			if err != nil {
				return err
			}

			sum, err := checksum.File(path)
			if err != nil {
				return err
			}

			prev, err := fixedformat.ReadPreviousHeader(path, c.header(path))
			if err != nil {
				return err
			}

			file := &storage.CatalogFile{
				Path:      path,
				Component: comp.String(),
				Checksum:  sum,
				Revision:  prev.Revision,
			}

			return c.withCatalog(cmd.Context(), func(s storage.CatalogStorage) error {
				if err := s.RegisterFile(cmd.Context(), file, df.Catalog()); err != nil {
					return err
				}
				c.printf("Registered %s: %d %s records, revision %d\n", path, file.Records, comp, file.Revision)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(s storage.CatalogStorage) error {
				files, err := s.ListFiles(cmd.Context())
				if err != nil {
					return err
				}
				if len(files) == 0 {
					c.printf("No files registered.\n")
					return nil
				}
				for _, f := range files {
					status := "ok"
					if err := checksum.Verify(f.Path, f.Checksum); err != nil {
						status = "changed"
						c.logger.Debug("catalog file differs", "path", f.Path, "error", err)
					}
					c.line(fmt.Sprintf("%-18s %6d  rev %-3d %-8s %s", f.Component, f.Records, f.Revision, status, f.Path))
				}
				return nil
			})
		},
	}

	find := &cobra.Command{
		Use:   "find <id>",
		Short: "Find the files that hold a record id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(s storage.CatalogStorage) error {
				hits, err := s.FindRecord(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(hits) == 0 {
					c.printf("Record %s not found.\n", args[0])
					return nil
				}
				for _, h := range hits {
					c.line(fmt.Sprintf("%-12s %-18s %s #%d %s", h.RecordID, h.Component, h.Path, h.Position+1, h.Name))
				}
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <file>",
		Short: "Remove a file from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(s storage.CatalogStorage) error {
				if err := s.RemoveFile(cmd.Context(), filepath.Clean(args[0])); err != nil {
					return err
				}
				c.printf("Removed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, find, remove)
	return cmd
}
