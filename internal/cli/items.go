package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/listlist/internal/liststore"
	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the list",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), listPanel(s.Items(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add items (use - to read newline-separated items from stdin)",
		Example: strings.TrimSpace(`
  listlist add Buy milk
  printf 'eggs\nflour\n' | listlist add -`),
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 1 && args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(b)
			}
			if strings.TrimSpace(text) == "" {
				return usagef("add: nothing to add")
			}
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			before := s.Len()
			after, err := s.Add(cmd.Context(), text)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), model.Plural(len(after)-before)+" added")
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "check [id|index]",
		Aliases: []string{"done", "toggle"},
		Short:   "Toggle the checked state of an item",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			items := s.Items()
			i, err := app.chooseItem(items, args, "check> ")
			if errors.Is(err, errAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			after, err := s.ToggleChecked(cmd.Context(), items[i].ID)
			if err != nil {
				return err
			}
			state := "unchecked"
			if after[i].Checked {
				state = "checked"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", state, after[i].Text))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [id|index] <text...>",
		Short: "Replace the text of an item (picks interactively when only text is given)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			items := s.Items()
			var target []string
			if len(args) > 1 {
				target, args = args[:1], args[1:]
			}
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usagef("edit: text cannot be empty")
			}
			i, err := app.chooseItem(items, target, "edit> ")
			if errors.Is(err, errAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := s.Edit(cmd.Context(), items[i].ID, text); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "edited")
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id|index]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an item",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			items := s.Items()
			i, err := app.chooseItem(items, args, "delete> ")
			if errors.Is(err, errAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := s.Remove(cmd.Context(), items[i].ID); err != nil {
				return err
			}
			reportDeleted(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newClearCheckedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-checked",
		Short: "Delete every checked item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if !s.Items().AnyChecked() {
				ui.Hint(cmd.OutOrStdout(), "nothing is checked")
				return nil
			}
			if _, err := s.RemoveWhereChecked(cmd.Context()); err != nil {
				return err
			}
			reportDeleted(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if !yes && s.Len() > 0 {
				return usagef("clear would delete %s; pass --yes to confirm", model.Plural(s.Len()))
			}
			if _, err := s.RemoveAll(cmd.Context()); err != nil {
				return err
			}
			reportDeleted(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting every item")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move an item to another position (1-based)",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("mv: not a number: %s", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return usagef("mv: not a number: %s", args[1])
			}
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := s.Reorder(cmd.Context(), from-1, to-1); err != nil {
				if errors.Is(err, liststore.ErrIndexOutOfRange) {
					return usagef("mv: index out of range: have %d, got %d -> %d", s.Len(), from, to)
				}
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("moved %d -> %d", from, to))
			return nil
		},
	}
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the items removed by the last delete",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if !s.CanUndo() {
				ui.Hint(cmd.OutOrStdout(), "nothing to undo")
				return nil
			}
			n := s.DeletedCount()
			if _, err := s.Undo(cmd.Context()); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), model.Plural(n)+" restored")
			return nil
		},
	}
}

func reportDeleted(w io.Writer, s *liststore.Store) {
	ui.OK(w, model.Plural(s.DeletedCount())+" have been deleted")
	ui.Hint(w, "Hint: run `listlist undo` to restore")
}
