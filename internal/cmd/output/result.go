package output

import (
	"io"
	"strconv"

	"github.com/agentstation/glossync/pkg/reconciler"
)

// ResultToTableData lays out a refresh result with one row per element kind.
func ResultToTableData(result *reconciler.Result) Data {
	headers := []string{"Kind", "Created", "Updated", "Refreshed", "Deleted", "Repaired", "Linked", "Unlinked", "Skipped", "Deferred"}
	align := make([]Align, len(headers))
	align[0] = AlignLeft
	for i := 1; i < len(align); i++ {
		align[i] = AlignRight
	}

	row := func(kind string, c reconciler.Counts) []string {
		return []string{
			kind,
			strconv.Itoa(c.Created),
			strconv.Itoa(c.Updated),
			strconv.Itoa(c.Refreshed),
			strconv.Itoa(c.Deleted),
			strconv.Itoa(c.Repaired),
			strconv.Itoa(c.Linked),
			strconv.Itoa(c.Unlinked),
			strconv.Itoa(c.Skipped),
			strconv.Itoa(c.Deferred),
		}
	}

	return Data{
		Headers: headers,
		Rows: [][]string{
			row("glossaries", result.Glossaries),
			row("categories", result.Categories),
			row("terms", result.Terms),
		},
		ColumnAlignment: align,
	}
}

// WriteResult writes a refresh result in the given format. Tables are
// followed by the warnings and the summary line.
func WriteResult(w io.Writer, format Format, result *reconciler.Result) error {
	if format != FormatTable && format != "" {
		return NewFormatter(format).Format(w, result)
	}

	if err := NewFormatter(FormatTable).Format(w, ResultToTableData(result)); err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		if _, err := io.WriteString(w, "warning: "+warning+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, result.Summary()+" ("+result.Metadata.Duration.String()+")\n")
	return err
}
