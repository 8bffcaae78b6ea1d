package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/statemod/internal/index"
	"github.com/iudanet/statemod/internal/models"
	"github.com/iudanet/statemod/internal/statemod"
	"github.com/iudanet/statemod/internal/validation"
)

func (c *Cli) readCommand() *cobra.Command {
	var listIDs bool

	cmd := &cobra.Command{
		Use:   "read <component> <file>",
		Short: "Read a data file and print a summary",
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

			c.printf("Read %d %s records from %s\n", df.Len(), comp, args[1])
			if listIDs {
				for _, r := range df.Catalog() {
					c.line(fmt.Sprintf("%-12s %s", r.RecordID, r.Name))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listIDs, "list", false, "Print the id and name of every record")

	return cmd
}

func (c *Cli) rewriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <component> <in> <out>",
		Short: "Read a data file and write it in canonical form",
		Long:  "Read a data file and write it in canonical form. Comments of the input file are carried into the output header.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}

			df, err := c.readFile(comp, args[1], models.NewDataSet())
			if err != nil {
				return err
			}

			if err := df.Write(args[2], c.header(args[1])); err != nil {
				return err
			}

			c.printf("Wrote %d %s records to %s\n", df.Len(), comp, args[2])
			return nil
		},
	}
}

func (c *Cli) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <component> <in> <out-list>",
		Short: "Export a data file as a delimited list file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}

			df, err := c.readFile(comp, args[1], models.NewDataSet())
			if err != nil {
				return err
			}

			// Комментарии существующего списка сохраняются
			if err := df.WriteList(args[2], c.header(existing(args[2]))); err != nil {
				return err
			}

			c.printf("Exported %d %s records to %s\n", df.Len(), comp, args[2])
			return nil
		},
	}
}

func (c *Cli) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <component> <list> <out>",
		Short: "Write a data file from a delimited list file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}

			df, err := c.readListFile(comp, args[1], models.NewDataSet())
			if err != nil {
				return err
			}

			if err := df.Write(args[2], c.header(existing(args[2]))); err != nil {
				return err
			}

			c.printf("Imported %d %s records to %s\n", df.Len(), comp, args[2])
			return nil
		},
	}
}

// existing returns path when the file exists, for header carry-over.
func existing(path string) string {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}

func (c *Cli) checkCommand() *cobra.Command {
	var delayTablesPath, rightsPath string

	cmd := &cobra.Command{
		Use:   "check <component> <file>",
		Short: "Check a data file and print the problems found",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args[0])
			if err != nil {
				return err
			}

			ds := models.NewDataSet()
			df, err := c.readFile(comp, args[1], ds)
			if err != nil {
				return err
			}

			problems := df.Check()
			refs, err := c.checkReferences(df, ds, delayTablesPath, rightsPath)
			if err != nil {
				return err
			}
			problems = append(problems, refs...)

			if len(problems) == 0 {
				c.printf("%s: %d records, no problems\n", args[1], df.Len())
				return nil
			}

			for _, p := range problems {
				c.line(p.String())
			}
			c.printf("%s: %d records, %d problems\n", args[1], df.Len(), len(problems))
			return ErrCheckFailed
		},
	}

	cmd.Flags().StringVar(&delayTablesPath, "delay-tables", "", "Delay table file to resolve return flow and assignment references")
	cmd.Flags().StringVar(&rightsPath, "rights", "", "Rights file to connect to the diversions")

	return cmd
}

// checkReferences resolves the references of df against the optional
// delay table and rights files.
func (c *Cli) checkReferences(df dataFile, ds *models.DataSet, delayTablesPath, rightsPath string) ([]validation.Problem, error) {
	var problems []validation.Problem

	var tables []*models.DelayTable
	if delayTablesPath != "" {
		var err error
		tables, err = statemod.ReadDelayTables(delayTablesPath, c.settings.DelayTableOptions(ds, c.logger))
		if err != nil {
			return nil, err
		}
	}

	switch r := df.(type) {
	case *records[*models.Diversion]:
		if delayTablesPath != "" {
			for _, ref := range index.UnresolvedReturnFlows(r.items, tables) {
				problems = append(problems, validation.Problem{
					ID:      ref.OwnerID,
					Field:   "ReturnFlow",
					Message: fmt.Sprintf("return flow %d uses unknown delay table %q", ref.Position+1, ref.TargetID),
				})
			}
		}
		if rightsPath != "" {
			rights, err := statemod.ReadDiversionRights(rightsPath, c.settings.CodecOptions(ds, c.logger))
			if err != nil {
				return nil, err
			}
			for _, o := range index.ConnectAllRights(r.items, rights) {
				problems = append(problems, validation.Problem{
					ID:      o.ID(),
					Field:   "StructureID",
					Message: fmt.Sprintf("right belongs to unknown diversion %q", o.Cgoto()),
				})
			}
			for _, d := range r.items {
				c.logger.Debug("connected rights",
					"diversion", d.ID(),
					"rights", len(d.Rights()))
			}
		}
	case *records[*models.DelayTableAssignment]:
		if delayTablesPath != "" {
			for _, ref := range index.UnresolvedAssignments(r.items, tables) {
				problems = append(problems, validation.Problem{
					ID:      ref.OwnerID,
					Field:   "DelayTableID",
					Message: fmt.Sprintf("entry %d uses unknown delay table %q", ref.Position+1, ref.TargetID),
				})
			}
		}
	}

	return problems, nil
}
