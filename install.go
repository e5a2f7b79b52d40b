package bookmarklet

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-bookmarklet/internal/assets"
	"github.com/alnah/go-bookmarklet/internal/pipeline"
)

// InstallPage describes an HTML page offering a bookmarklet for installation.
type InstallPage struct {
	Title       string // link text and page title
	Bookmarklet string // output of Render
	Description string // Markdown shown below the link (optional)
	Source      string // unminified script, shown highlighted (optional)
	Date        string // footer build date, already formatted (optional)

	// DescriptionDir is where the description file lives and OutputDir
	// where the page is written. When both are set, relative links and
	// images in the description are rewritten to resolve from OutputDir.
	DescriptionDir string
	OutputDir      string
}

// RenderInstallPage renders p with the "install" template from loader,
// or the embedded one when loader is nil.
func RenderInstallPage(ctx context.Context, p InstallPage, loader AssetLoader) (string, error) {
	var (
		tpl string
		err error
	)
	if loader != nil {
		tpl, err = loader.LoadTemplate(InstallTemplate)
	} else {
		tpl, err = assets.LoadTemplate(assets.InstallTemplate)
		err = convertAssetError(err)
	}
	if err != nil {
		return "", fmt.Errorf("loading install template: %w", err)
	}

	r, err := pipeline.NewInstallRenderer(tpl)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInstallPage, err)
	}

	html, err := r.Render(ctx, pipeline.InstallPage{
		Title:       p.Title,
		Href:        p.Bookmarklet,
		Description: p.Description,
		Source:      p.Source,
		Date:        p.Date,

		DescriptionDir: p.DescriptionDir,
		PageDir:        p.OutputDir,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrInstallPage) {
			return "", fmt.Errorf("%w: %v", ErrInstallPage, err)
		}
		return "", err
	}
	return html, nil
}
