package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

// NewRelationCommand creates the relation command group.
func NewRelationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relation",
		Aliases: []string{"rel"},
		Short:   "Manage relations between cubes",
	}

	cmd.AddCommand(newRelationAddCommand())
	cmd.AddCommand(newRelationRemoveCommand())
	cmd.AddCommand(newRelationUpdateCommand())

	return cmd
}

func newRelationAddCommand() *cobra.Command {
	var cardinality string

	cmd := &cobra.Command{
		Use:   "add <left> <right> <left-column> <right-column>",
		Short: "Add a relation between two cubes",
		Long: `Add a directed relation from the left cube to the right cube, joined
on the given columns. The relation is rejected if it would relate a
cube to itself, duplicate an existing path, or create a cycle.`,
		Example: `  cubeql relation add orders customers customer_id id --cardinality many-to-one`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := core.ParseCardinality(cardinality)
			if err != nil {
				return err
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := cmdCtx.Engine.CreateRelation(args[0], args[1], args[2], args[3], card)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added relation %s (%s.%s -> %s.%s, %s)\n",
				id, args[0], args[2], args[1], args[3], card)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cardinality, "cardinality", "c", string(core.OneToMany),
		"Relation cardinality (one-to-one|one-to-many|many-to-one)")

	return cmd
}

func newRelationRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a relation by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Engine.DeleteRelation(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed relation %s\n", args[0])
			return nil
		},
	}
}

func newRelationUpdateCommand() *cobra.Command {
	var (
		leftColumn  string
		rightColumn string
		cardinality string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a relation's join columns or cardinality",
		Example: `  cubeql relation update 3f2a... --cardinality one-to-one
  cubeql relation update 3f2a... --left-column customer_ref`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := core.RelationUpdate{
				LeftColumn:  leftColumn,
				RightColumn: rightColumn,
			}
			if cardinality != "" {
				card, err := core.ParseCardinality(cardinality)
				if err != nil {
					return err
				}
				upd.Cardinality = card
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Engine.UpdateRelation(args[0], upd); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated relation %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&leftColumn, "left-column", "", "New left join column")
	cmd.Flags().StringVar(&rightColumn, "right-column", "", "New right join column")
	cmd.Flags().StringVarP(&cardinality, "cardinality", "c", "", "New cardinality (one-to-one|one-to-many|many-to-one)")

	return cmd
}
