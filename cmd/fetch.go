package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
	"github.com/kamal-hamza/fetch-tool/internal/core/services"
	"github.com/kamal-hamza/fetch-tool/pkg/ui"
)

// errPickCanceled is returned by a picker when the user backs out
var errPickCanceled = errors.New("selection canceled")

func (o *rootOptions) runFetch(cmd *cobra.Command, command domain.Command, args []string, parseErr error) error {
	out := cmd.OutOrStdout()

	// --pick replaces the image argument, it does not add to it
	pickMode := o.pick && len(args) == 1
	if parseErr != nil && !pickMode {
		fmt.Fprintln(out, "Invalid arguments")
		return &exitError{code: exitInvalidArguments}
	}

	if err := o.initializeApp(cmd); err != nil {
		return err
	}
	o.logger.Debug("dispatching", "command", command.Kind.String(), "args", args)

	var (
		img domain.Image
		err error
	)
	if pickMode {
		img, err = o.pickFromManifest(cmd)
		if errors.Is(err, errPickCanceled) {
			return nil
		}
	} else {
		img, err = o.resolve(cmd, command.Image)
	}
	if errors.Is(err, domain.ErrImageNotAvailable) {
		fmt.Fprintf(out, "%s is not available\n", command.Image)
		return &exitError{code: exitNotAvailable}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "fetching %s\n", img.Name)

	result, err := o.download(cmd, img)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Saved %s (%s)", result.Path, ui.FormatBytes(result.Bytes))))
	if o.cfg.VerifyChecksum {
		fmt.Fprintln(out, ui.FormatSuccess("sha256 verified"))
		fmt.Fprintln(out, "  "+ui.RenderKeyValue("sha256", result.SHA256))
	}

	if o.copyPath {
		path := result.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := o.clipper(path); err != nil {
			o.logger.Debug("clipboard write failed", "error", err)
			fmt.Fprintln(out, ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		} else {
			fmt.Fprintln(out, ui.FormatInfo("Path copied to clipboard"))
		}
	}

	return nil
}

func (o *rootOptions) resolve(cmd *cobra.Command, name string) (domain.Image, error) {
	ctx, cancel := o.manifestContext(cmd)
	defer cancel()
	return o.fetchService.Resolve(ctx, name)
}

func (o *rootOptions) pickFromManifest(cmd *cobra.Command) (domain.Image, error) {
	ctx, cancel := o.manifestContext(cmd)
	resp, err := o.availableService.Execute(ctx)
	cancel()
	if err != nil {
		return domain.Image{}, err
	}

	if resp.Total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWarning("No images available"))
		return domain.Image{}, errPickCanceled
	}

	return o.picker(resp.Images)
}

func (o *rootOptions) download(cmd *cobra.Command, img domain.Image) (*ports.DownloadResult, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run := func(ctx context.Context, progress ports.ProgressFunc) (*ports.DownloadResult, error) {
		return o.fetchService.Download(ctx, img, services.DownloadOptions{
			Dir:       o.cfg.DownloadDir,
			Verify:    o.cfg.VerifyChecksum,
			Overwrite: o.overwrite,
			Progress:  progress,
		})
	}

	out := cmd.OutOrStdout()
	if o.cfg.ShowProgress && o.isTTY(out) {
		return o.progress(ctx, out, img.Name, run)
	}
	return run(ctx, nil)
}

// pickImage lets the user choose an image with a fuzzy finder
func pickImage(images []domain.Image) (domain.Image, error) {
	idx, err := fuzzyfinder.Find(
		images,
		func(i int) string {
			return images[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			img := images[i]
			return fmt.Sprintf("Name: %s\nHash: %s\nFile: %s\nURL:  %s\n\n%s",
				img.Name, img.SHA256, img.Filename(), img.URL, img.Desc)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return domain.Image{}, errPickCanceled
		}
		return domain.Image{}, fmt.Errorf("image selection failed: %w", err)
	}
	return images[idx], nil
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
