package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/listlist/internal/codec"
	"github.com/idilsaglam/listlist/internal/config"
	"github.com/idilsaglam/listlist/internal/importer"
	"github.com/idilsaglam/listlist/internal/model"
	"github.com/idilsaglam/listlist/internal/store"
	"github.com/idilsaglam/listlist/internal/store/jsonstore"
	"github.com/idilsaglam/listlist/internal/ui"
)

func newShareCmd(app *App) *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that carries the whole list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd.Context()); err != nil {
				return err
			}
			link := app.shareLink()
			fmt.Fprintln(cmd.OutOrStdout(), link)
			if !copyLink {
				return nil
			}
			if err := app.copy(link); err != nil {
				return fmt.Errorf("copy link: %w", err)
			}
			ui.OK(cmd.ErrOrStderr(), "Link copied!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Also copy the link to the clipboard")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var resolve string
	cmd := &cobra.Command{
		Use:   "import <link|share-string>",
		Short: "Import a shared list, resolving conflicts with the current one",
		Example: `  listlist import 'https://listlist.app/?import=TWFrZSB0...'
  listlist import TWFrZSB0... --resolve merge`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res importer.Resolution
			if resolve != "" {
				r, err := importer.ParseResolution(resolve)
				if err != nil {
					return usageError{err}
				}
				res = r
			}
			ctx := cmd.Context()
			loc, err := importer.ParseLocation(args[0])
			if err != nil {
				return usageError{err}
			}
			raw, _ := loc.Param(importer.Param)
			if _, err := codec.Decode(raw); err != nil {
				return usageError{err}
			}
			loc.OnClear = func(clean string) error {
				app.log.Debug("import marker cleared", "url", clean)
				return nil
			}

			s, err := app.open(ctx)
			if err != nil {
				return err
			}
			r := importer.New(s, loc, importer.WithLogger(app.log))
			state, err := r.Check(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if state == importer.Resolved {
				ui.OK(out, "imported "+model.Plural(s.Len()))
				return nil
			}

			if resolve == "" {
				ui.Hint(out, fmt.Sprintf("You are trying to import %s but there are already %s on your list.",
					model.Plural(len(r.Incoming())), model.Plural(s.Len())))
				labels := make([]string, len(importer.Resolutions))
				for i, opt := range importer.Resolutions {
					labels[i] = opt.String()
				}
				i, err := app.pick(labels, "resolve> ")
				if errors.Is(err, errAborted) {
					res = importer.Cancel
				} else if err != nil {
					return err
				} else {
					res = importer.Resolutions[i]
				}
			}

			list, err := r.Resolve(ctx, res)
			if err != nil {
				return err
			}
			if res == importer.Cancel {
				ui.Hint(out, "import canceled")
				return nil
			}
			ui.OK(out, fmt.Sprintf("%s: list now has %s", res, model.Plural(len(list))))
			return nil
		},
	}
	cmd.Flags().StringVar(&resolve, "resolve", "", "Resolution when the list is not empty (merge|overwrite|cancel)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		format string
		render bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list as a share string, JSON or Markdown",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			items := s.Items()
			out := cmd.OutOrStdout()
			switch format {
			case "share":
				fmt.Fprintln(out, codec.Encode(items))
			case "json":
				b, err := store.EncodeList(items)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			case "markdown", "md":
				md := markdown(items)
				if render {
					md, err = renderMarkdown(md)
					if err != nil {
						return err
					}
				}
				fmt.Fprint(out, md)
			default:
				return usagef("export: unknown format %q (want share|json|markdown)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "share", "Output format (share|json|markdown)")
	cmd.Flags().BoolVar(&render, "render", false, "Render Markdown for the terminal")
	return cmd
}

func renderMarkdown(md string) (string, error) {
	style := "dark"
	if ui.Current().Name == "mono" {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func newWatchCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the list again whenever another process changes it (file backend)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Backend != config.BackendFile {
				return usagef("watch needs the file backend, not %q", app.cfg.Backend)
			}
			ctx := cmd.Context()
			if _, err := app.open(ctx); err != nil {
				return err
			}
			kv := app.kv.(*jsonstore.Store)
			hook := store.NewHook(kv, store.ListKey)
			out := cmd.OutOrStdout()

			show := func() {
				items, err := hook.Load(ctx)
				if err != nil {
					ui.Fail(cmd.ErrOrStderr(), err.Error())
					return
				}
				fmt.Fprintln(out, listPanel(items, group))
			}
			if err := os.MkdirAll(kv.Dir, 0o755); err != nil {
				return fmt.Errorf("mkdir: %w", err)
			}
			show()
			err := kv.Watch(ctx, store.ListKey, show)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}
