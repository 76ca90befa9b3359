package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iamLuCat/portfolio/internal/config"
	"github.com/iamLuCat/portfolio/internal/render"
	"github.com/iamLuCat/portfolio/internal/viewport"
)

var exportCmd = &cobra.Command{
	Use:   "export <output-dir>",
	Short: "Write a static copy of the site",
	Long: `Renders index.html and 404.html, writes portfolio.json and one
projects/<id>.json per project, and copies the client assets under static/.

The exported site is read-only. The live viewport session, the contact form
(api/contact), the project link redirects and the ?category= / ?project=
views are answered by "portfolio serve" only; on a static host they fall
back to the unfiltered page or fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportSite(cfg, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func exportSite(cfg *config.Config, outputDir string, out io.Writer) error {
	d, err := cfg.LoadPortfolio()
	if err != nil {
		return fmt.Errorf("failed to load portfolio data: %w", err)
	}
	rd, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	// Ensure output directories exist
	projectsDir := filepath.Join(outputDir, "projects")
	if err := os.MkdirAll(projectsDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := render.Page{
		Data:     d,
		BasePath: cfg.Site.BasePath,
		SiteKey:  cfg.Recaptcha.SiteKey,
		Projects: d.Projects,
	}

	index := base
	index.Active = viewport.SectionHome
	if err := writePage(rd, filepath.Join(outputDir, "index.html"), index); err != nil {
		return err
	}
	fmt.Fprintln(out, "  Created index.html")

	notFound := base
	notFound.NotFound = true
	if err := writePage(rd, filepath.Join(outputDir, "404.html"), notFound); err != nil {
		return err
	}
	fmt.Fprintln(out, "  Created 404.html")

	if err := writeJSON(filepath.Join(outputDir, "portfolio.json"), d); err != nil {
		return err
	}
	fmt.Fprintln(out, "  Created portfolio.json")

	for _, p := range d.Projects {
		name := p.ID + ".json"
		if err := writeJSON(filepath.Join(projectsDir, name), p); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created projects/%s (%s)\n", name, p.Category)
	}

	n, err := copyStatic(filepath.Join(outputDir, "static"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Copied %d static files\n", n)

	fmt.Fprintln(out, "Done! The export is read-only: contact form, filters and live updates need \"portfolio serve\".")
	return nil
}

func writePage(rd *render.Renderer, path string, p render.Page) error {
	var buf bytes.Buffer
	if err := rd.Render(&buf, p); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func copyStatic(dir string) (int, error) {
	assets := render.Static()
	count := 0
	err := fs.WalkDir(assets, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if entry.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(assets, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to copy static files: %w", err)
	}
	return count, nil
}
