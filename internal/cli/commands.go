package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/records/internal/export"
	"github.com/Makepad-fr/records/internal/model"
	"github.com/Makepad-fr/records/internal/query"
	"github.com/Makepad-fr/records/internal/recordlist"
	"github.com/Makepad-fr/records/internal/tui"
	"github.com/Makepad-fr/records/internal/ui"
)

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if err := tui.Run(contextOf(cmd), a.list); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive editor (default)",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runTUI,
	}
}

func (a *app) lsCommand() *cobra.Command {
	var (
		group    bool
		where    string
		markdown bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List records",
		Example: `  records ls
  records ls --group
  records ls --where '!isComplete && text contains "milk"'`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *query.Filter
			if where != "" {
				f, err := query.Compile(where)
				if err != nil {
					return usageError{err}
				}
				filter = f
			}
			records := a.list.Records()
			if markdown {
				hits, err := filter.Apply(records)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), export.RenderMarkdown(hitRecords(hits), markdownStyle(a.noColor), ui.Width()))
				return nil
			}
			if !cmd.Flags().Changed("group") {
				group = a.cfg.UI.Group
			}
			return a.printList(cmd.OutOrStdout(), records, filter, group)
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	cmd.Flags().StringVar(&where, "where", "", "filter expression over id, text, isComplete, index")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as a Markdown task list")
	return cmd
}

func markdownStyle(noColor bool) string {
	if noColor {
		return "notty"
	}
	return "dark"
}

func hitRecords(hits []query.Hit) []model.Record {
	out := make([]model.Record, len(hits))
	for i, h := range hits {
		out[i] = h.Record
	}
	return out
}

func (a *app) printList(w io.Writer, records []model.Record, filter *query.Filter, group bool) error {
	hits, err := filter.Apply(records)
	if err != nil {
		return err
	}
	done, pending := a.list.Stats()
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, ui.Bold("Records")),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymPending), pending,
		ui.C(t.Accent, "Total"), len(records),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(done, done+pending, 28)))
	lines = append(lines, "")
	if filter != nil {
		lines = append(lines, ui.C(t.Muted, "where "+filter.String()))
	}
	if group {
		lines = append(lines, groupLines(hits)...)
	} else {
		lines = append(lines, flatLines(hits)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, `Tip: add with `+"`records add \"Buy milk\"`"))
	ui.Panel(w, lines)
	return nil
}

func flatLines(hits []query.Hit) []string {
	t := ui.Current()
	if len(hits) == 0 {
		return []string{ui.C(t.Muted, "No records")}
	}
	width := ui.Width() - 24
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		idx := fmt.Sprintf("%2d.", h.Index+1)
		box, color := t.BoxUnchecked, t.Muted
		text := ui.Truncate(h.Record.Text, width)
		if h.Record.IsComplete {
			box, color = t.BoxChecked, t.Success
			text = ui.Faint(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.Faint(idx), ui.C(color, box), text, ui.C(t.Muted, shortID(h.Record.ID))))
	}
	return out
}

func groupLines(hits []query.Hit) []string {
	var pend, done []query.Hit
	for _, h := range hits {
		if h.Record.IsComplete {
			done = append(done, h)
		} else {
			pend = append(pend, h)
		}
	}
	t := ui.Current()
	section := func(title string, hs []query.Hit) []string {
		lines := []string{ui.C(t.Accent, title)}
		if len(hs) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(hs)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add a new record (text can be multiple words)",
		Example: `  records add "Buy milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			before := len(a.list.Records())
			st, err := a.list.Add(contextOf(cmd), text)
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			if len(st.Records) == before {
				ui.Notice(cmd.ErrOrStderr(), "nothing to add: empty text")
				return nil
			}
			added := st.Records[len(st.Records)-1]
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %d. %s", len(st.Records), shortID(added.ID)))
			return nil
		},
	}
}

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "edit <index|id> <text...>",
		Short:   "Replace the text of a record",
		Example: `  records edit 2 "Buy oat milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolve(a.list.Records(), args[0])
			if err != nil {
				return err
			}
			if st := a.list.BeginEdit(rec.ID); st.Mode != recordlist.Editing {
				ui.Notice(cmd.ErrOrStderr(), "record is complete; reopen it with `records done` to edit")
				return nil
			}
			text := strings.Join(args[1:], " ")
			if text == "" {
				a.list.CancelEdit()
				ui.Notice(cmd.ErrOrStderr(), "nothing to save: empty text")
				return nil
			}
			if _, err := a.list.SaveEditText(contextOf(cmd), rec.ID, text); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "edited "+shortID(rec.ID))
			return nil
		},
	}
}

func (a *app) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "done <index|id>",
		Short:   "Toggle completion of a record",
		Example: `  records done 2`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolve(a.list.Records(), args[0])
			if err != nil {
				return err
			}
			if _, err := a.list.ToggleComplete(contextOf(cmd), rec.ID); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			verb := "completed"
			if rec.IsComplete {
				verb = "reopened"
			}
			ui.OK(cmd.OutOrStdout(), verb+" "+shortID(rec.ID))
			return nil
		},
	}
}

func (a *app) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"delete"},
		Short:   "Remove a record (completed records are protected)",
		Example: `  records rm 3`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolve(a.list.Records(), args[0])
			if err != nil {
				return err
			}
			if rec.IsComplete {
				ui.Notice(cmd.ErrOrStderr(), "record is complete and cannot be removed")
				return nil
			}
			if _, err := a.list.Delete(contextOf(cmd), rec.ID); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed "+shortID(rec.ID))
			return nil
		},
	}
}

func (a *app) exportCommand() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as " + strings.Join(export.Formats, ", "),
		Example: `  records export --format csv
  records export --format pdf -o records.pdf`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := export.Export(a.list.Records(), format)
			if err != nil {
				return usageError{err}
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			ui.OK(cmd.ErrOrStderr(), "exported to "+output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "one of: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
