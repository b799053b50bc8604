// Command snptool sorts, inspects and converts SNP files, and moves them in
// and out of SQLite.
package main

import (
	"context"
	"fmt"
	"log"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/carbocation/pfx"
	"github.com/carbocation/snp"
)

var CLI struct {
	Sort   SortCmd   `cmd:"" help:"Write a SNP file sorted by position"`
	View   ViewCmd   `cmd:"" help:"Print each variant with its default annotation"`
	Import ImportCmd `cmd:"" help:"Load a SNP file into a SQLite database"`
	Export ExportCmd `cmd:"" help:"Write the contents of a SQLite database as a SNP file"`
}

type SortCmd struct {
	In     string `arg:"" help:"SNP file to read; - for stdin"`
	Out    string `arg:"" optional:"" default:"-" help:"SNP file to write; - for stdout"`
	Header bool   `help:"Write a header line first"`
}

func (c *SortCmd) Run(ctx context.Context) error {
	records, err := snp.ParseFileContext(ctx, expandHome(c.In))
	if err != nil {
		return err
	}
	log.Println("Read", len(records), "variants from", c.In)

	return snp.WriteFile(ctx, expandHome(c.Out), records, c.Header)
}

type ViewCmd struct {
	In string `arg:"" help:"SNP file to read; - for stdin"`
}

func (c *ViewCmd) Run(ctx context.Context) error {
	records, err := snp.ParseFileContext(ctx, expandHome(c.In))
	if err != nil {
		return err
	}

	for _, r := range records {
		value, ok := r.DefaultAnnotation()
		if !ok {
			value = "NA"
		}
		fmt.Printf("%s\t%s\t%s=%s\n", r.Identifier(), snp.FormatFrequency(r.Frequency()), snp.DefaultAnnotationKey, value)
	}

	return nil
}

type ImportCmd struct {
	In string `arg:"" help:"SNP file to read; - for stdin"`
	DB string `arg:"" help:"SQLite database to create or extend"`
}

func (c *ImportCmd) Run(ctx context.Context) error {
	db, err := snp.OpenDB(expandHome(c.DB))
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ImportFile(ctx, expandHome(c.In))
	if err != nil {
		return err
	}
	log.Println("Imported", n, "variants into", c.DB, "using the", snp.WhichSQLiteDriver(), "driver")

	return nil
}

type ExportCmd struct {
	DB     string `arg:"" help:"SQLite database to read"`
	Out    string `arg:"" optional:"" default:"-" help:"SNP file to write; - for stdout"`
	Header bool   `help:"Write a header line first"`
}

func (c *ExportCmd) Run(ctx context.Context) error {
	db, err := snp.OpenDB(expandHome(c.DB))
	if err != nil {
		return err
	}
	defer db.Close()

	if meta, err := db.Metadata(); err == nil {
		log.Printf("Last import: %s (%d variants) at %s\n", meta.Source, meta.RecordCount, meta.ImportTime.Time())
	}

	records, err := db.Variants()
	if err != nil {
		return err
	}

	return snp.WriteFile(ctx, expandHome(c.Out), records, c.Header)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	return filepath.Join(usr.HomeDir, path[2:])
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snptool"),
		kong.Description("Sort, inspect and convert SNP files"),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
