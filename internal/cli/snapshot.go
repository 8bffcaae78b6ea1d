package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/statemod/internal/iocli"
	"github.com/iudanet/statemod/internal/models"
	"github.com/iudanet/statemod/internal/storage"
	"github.com/iudanet/statemod/internal/storage/boltdb"
)

// ErrSnapshotCorrupt is returned when snapshot data no longer matches its checksum.
var ErrSnapshotCorrupt = errors.New("snapshot data does not match its checksum")

// withSnapshots opens the snapshot database for the duration of fn.
func (c *Cli) withSnapshots(ctx context.Context, fn func(storage.SnapshotStorage) error) error {
	s, err := boltdb.New(ctx, c.settings.Workspace.Bolt)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			c.logger.Error("failed to close snapshot database", "error", err)
		}
	}()
	return fn(s)
}

func (c *Cli) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore record snapshots in the workspace",
	}

	var name string
	save := &cobra.Command{
		Use:   "save <component> <file>",
		Short: "Save the records of a data file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}

			df, err := c.readFile(comp, args[1], models.NewDataSet())
			if err != nil {
				return err
			}

			data, err := df.Marshal()
			if err != nil {
				return err
			}

			snapName := name
			if snapName == "" {
				snapName = filepath.Base(args[1])
			}
			snap := storage.NewSnapshot(snapName, comp, data, df.Len())

			return c.withSnapshots(cmd.Context(), func(s storage.SnapshotStorage) error {
				if err := s.SaveSnapshot(cmd.Context(), snap); err != nil {
					return err
				}
				c.printf("Saved snapshot %s %q (%d records)\n", snap.ID, snap.Name, snap.Records)
				return nil
			})
		},
	}
	save.Flags().StringVar(&name, "name", "", "Snapshot name (default: file name)")

	list := &cobra.Command{
		Use:   "list [component]",
		Short: "List snapshots, oldest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				comp, err := parseComponent(args[0])
				if err != nil {
					return err
				}
				filter = comp.String()
			}

			return c.withSnapshots(cmd.Context(), func(s storage.SnapshotStorage) error {
				snaps, err := s.ListSnapshots(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if len(snaps) == 0 {
					c.printf("No snapshots found.\n")
					return nil
				}
				for _, snap := range snaps {
					c.line(fmt.Sprintf("%s  %-20s %-18s %6d  %s",
						snap.ID, snap.Name, snap.Component, snap.Records,
						snap.CreatedAt.Format("2006-01-02 15:04:05")))
				}
				return nil
			})
		},
	}

	restore := &cobra.Command{
		Use:   "restore <id|name> <out>",
		Short: "Write the records of a snapshot to a data file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSnapshots(cmd.Context(), func(s storage.SnapshotStorage) error {
				snap, err := findSnapshot(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				if !snap.Verify() {
					return fmt.Errorf("%s: %w", snap.ID, ErrSnapshotCorrupt)
				}

				comp, err := parseComponent(snap.Component)
				if err != nil {
					return err
				}

				df, err := c.unmarshal(comp, snap.Data, models.NewDataSet())
				if err != nil {
					return err
				}

				if err := df.Write(args[1], c.header(existing(args[1]))); err != nil {
					return err
				}

				c.printf("Restored %d %s records from %q to %s\n", df.Len(), comp, snap.Name, args[1])
				return nil
			})
		},
	}

	var yes bool
	remove := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSnapshots(cmd.Context(), func(s storage.SnapshotStorage) error {
				snap, err := findSnapshot(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				if !yes && !iocli.Confirm(c.io, fmt.Sprintf("Delete snapshot %s %q?", snap.ID, snap.Name)) {
					c.printf("Kept snapshot %s\n", snap.ID)
					return nil
				}
				if err := s.DeleteSnapshot(cmd.Context(), snap.ID); err != nil {
					return err
				}
				c.printf("Deleted snapshot %s\n", snap.ID)
				return nil
			})
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	cmd.AddCommand(save, list, restore, remove)
	return cmd
}

// findSnapshot looks a snapshot up by id, then by name.
func findSnapshot(ctx context.Context, s storage.SnapshotStorage, key string) (*storage.Snapshot, error) {
	snap, err := s.GetSnapshot(ctx, strings.TrimSpace(key))
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, storage.ErrSnapshotNotFound) {
		return nil, err
	}
	return s.FindSnapshot(ctx, key)
}
