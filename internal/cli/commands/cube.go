package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCubeCommand creates the cube command group.
func NewCubeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Manage cubes",
	}

	cmd.AddCommand(newCubeAddCommand())
	cmd.AddCommand(newCubeRemoveCommand())
	cmd.AddCommand(newCubeRenameCommand())
	cmd.AddCommand(newCubeColumnsCommand())

	return cmd
}

func newCubeAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [column...]",
		Short: "Add a cube",
		Example: `  cubeql cube add orders id customer_id total`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cube, err := cmdCtx.Engine.CreateCube(args[0], args[1:])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added cube %s (%d columns)\n", cube.Name, len(cube.Columns))
			return nil
		},
	}
}

func newCubeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a cube and its relations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := cmdCtx.Engine.DeleteCube(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("cube %q not found", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed cube %s\n", args[0])
			return nil
		},
	}
}

func newCubeRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a cube",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Engine.RenameCube(args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed cube %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newCubeColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <name> [column...]",
		Short: "Replace a cube's column list",
		Long: `Replace a cube's column list. Relations that reference a column no
longer present are dropped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Engine.UpdateCubeColumns(args[0], args[1:]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated columns of %s\n", args[0])
			return nil
		},
	}
}
