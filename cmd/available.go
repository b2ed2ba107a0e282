package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/pkg/ui"
)

func (o *rootOptions) runAvailable(cmd *cobra.Command) error {
	ctx, cancel := o.manifestContext(cmd)
	defer cancel()

	resp, err := o.availableService.Execute(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resp.Total == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No images available"))
		return nil
	}

	if o.table {
		renderImageTable(out, resp.Images)
		return nil
	}

	for _, img := range resp.Images {
		printImage(out, img)
	}
	return nil
}

// printImage writes one manifest record followed by a blank line
func printImage(out io.Writer, img domain.Image) {
	fmt.Fprintf(out, "name: %s\n", img.Name)
	fmt.Fprintf(out, "hash: %s\n", img.SHA256)
	fmt.Fprintf(out, "desc:\n\t%s\n\n", img.Desc)
}

func renderImageTable(out io.Writer, images []domain.Image) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 12},
		{Header: "Hash", Width: 12},
		{Header: "File", MaxWidth: 40},
		{Header: "Description", MaxWidth: 60},
	})

	for _, img := range images {
		table.AddRow([]string{img.Name, img.ShortHash(), img.Filename(), img.Desc})
	}

	fmt.Fprintln(out, ui.FormatTitle("Available images"))
	fmt.Fprintln(out)
	fmt.Fprint(out, table.Render())
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d image(s)", len(images))))
}
