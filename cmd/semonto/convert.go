package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semonto/export"
	"github.com/c360studio/semonto/loader"
	"github.com/c360studio/semonto/source"
)

// convertOptions holds the output flags shared by convert and watch.
type convertOptions struct {
	format  string
	profile string
	output  string
}

func (o *convertOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format ("+strings.Join(export.FormatNames(), ", ")+")")
	cmd.Flags().StringVarP(&o.profile, "profile", "p", "", "RDF export profile ("+strings.Join(export.ProfileNames(), ", ")+")")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file, or directory when converting several sources")
}

func convertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <source>...",
		Short: "Load ontologies and write them in another format",
		Long: `Load each source with its imports and write the merged ontology.

Sources are local paths, glob patterns (such as "onto/**/*.obo"), or
http, https and ftp URLs. With several sources, --output names a directory
and each result is written there under the source's base name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func (a *app) convert(ctx context.Context, stdout io.Writer, patterns []string, opts *convertOptions) error {
	sources, err := source.Expand(patterns)
	if err != nil {
		return err
	}

	format, err := a.resolveFormat(opts)
	if err != nil {
		return err
	}
	profile, err := a.resolveProfile(opts)
	if err != nil {
		return err
	}

	l, err := a.loader(nil)
	if err != nil {
		return err
	}

	toDir := len(sources) > 1 || isDir(opts.output)
	if toDir && opts.output != "" {
		if err := os.MkdirAll(opts.output, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, src := range sources {
		if _, err := a.convertOne(ctx, l, src, stdout, toDir, format, profile, opts.output); err != nil {
			return err
		}
	}
	return nil
}

// convertOne loads src and writes it, returning the load result.
func (a *app) convertOne(ctx context.Context, l *loader.Loader, src string, stdout io.Writer, toDir bool,
	format export.Format, profile export.Profile, output string) (*loader.Result, error) {
	res, err := l.LoadResult(ctx, src)
	if err != nil {
		return nil, err
	}

	data, err := export.NewExporter(profile).Export(res.Ontology, format)
	if err != nil {
		return nil, err
	}

	target := output
	if toDir && output != "" {
		target = filepath.Join(output, outputName(res.Sources[0], format))
	}

	if target == "" {
		_, err = io.Copy(stdout, bytes.NewReader(data))
		return res, err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", target, err)
	}

	a.logger.Info("Wrote ontology",
		slog.String("source", src),
		slog.String("output", target),
		slog.String("format", string(format)),
		slog.Int("terms", res.Ontology.Len()))
	return res, nil
}

// resolveFormat picks the format from the flag, then the output file
// extension, then the configuration.
func (a *app) resolveFormat(opts *convertOptions) (export.Format, error) {
	if opts.format != "" {
		return export.ParseFormat(opts.format)
	}
	if opts.output != "" && !isDir(opts.output) {
		if f, ok := export.FormatFromExtension(filepath.Ext(opts.output)); ok {
			return f, nil
		}
	}
	return export.ParseFormat(a.cfg.Output.Format)
}

func (a *app) resolveProfile(opts *convertOptions) (export.Profile, error) {
	if opts.profile != "" {
		return export.ParseProfile(opts.profile)
	}
	return export.ParseProfile(a.cfg.Output.Profile)
}

// outputName derives an output file name from the source location.
func outputName(loc source.Location, format export.Format) string {
	base := loc.Base()
	if base == "" || base == "/" || base == "." {
		base = "ontology"
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	info, _ := export.GetFormatInfo(format)
	return base + info.Extension
}

func isDir(p string) bool {
	if p == "" {
		return false
	}
	if strings.HasSuffix(p, string(os.PathSeparator)) {
		return true
	}
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}
