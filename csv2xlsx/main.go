// Copyright 2021, 2026 Tamás Gulácsi. All rights reserved.

// Command csv2xlsx streams CSV files through the validating workbook into
// an xlsx file, one sheet per CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/validsheet"
	"github.com/UNO-SOFT/validsheet/formats"
	"github.com/UNO-SOFT/validsheet/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	var cols columnDefs
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (flag=value lines)")
	flagEnc := fs.String("charset", validsheet.EncName, "csv charset name")
	flagFormats := fs.String("formats", "", "format table file (default: built-in)")
	fs.Var(&cols, "col", "column definition name:FORMAT[:width], can be repeated")
	flagFreezeRow := fs.Int("freeze-row", 0, "freeze rows up to this one")
	flagFreezeCol := fs.Int("freeze-col", 0, "freeze columns up to this one")
	flagAutoFilter := fs.Bool("autofilter", false, "autofilter on the header row")
	flagHeaderBold := fs.Bool("header-bold", true, "bold header row")
	flagStrict := fs.Bool("strict", false, "stop at the first rejected row")
	var meta [5]string
	fs.StringVar(&meta[0], "title", "", "document title")
	fs.StringVar(&meta[1], "subject", "", "document subject")
	fs.StringVar(&meta[2], "author", "", "document author")
	fs.StringVar(&meta[3], "company", "", "company")
	fs.StringVar(&meta[4], "description", "", "document description")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] out.xlsx [sheet:]in.csv...",
		Options: []ff.Option{
			ff.WithEnvVarPrefix("CSV2XLSX"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			reg := formats.Default()
			if *flagFormats != "" {
				var err error
				if reg, err = formats.LoadFile(*flagFormats); err != nil {
					return err
				}
			}
			if err := cols.check(reg); err != nil {
				return err
			}

			sink := xlsx.NewWriter()
			if !*flagHeaderBold {
				sink.HeaderStyle = nil
			}
			wb := validsheet.New(sink, validsheet.WithLogger(logger))
			for i, set := range []func(string) error{
				wb.SetTitle, wb.SetSubject, wb.SetAuthor, wb.SetCompany, wb.SetDescription,
			} {
				if meta[i] == "" {
					continue
				}
				if err := set(meta[i]); err != nil {
					return err
				}
			}

			opts := sheetOptions{
				Columns: cols, FreezeRow: *flagFreezeRow, FreezeColumn: *flagFreezeCol,
				AutoFilter: *flagAutoFilter, Strict: *flagStrict, Charset: *flagEnc,
			}
			for i, fn := range args[1:] {
				sheetName := fmt.Sprintf("Sheet%d", i+1)
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				if err := copyFile(ctx, wb, reg, sheetName, fn, opts); err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
			}

			if out := args[0]; out != "-" {
				return wb.ExportFile(out)
			}
			return wb.Export(os.Stdout)
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

type sheetOptions struct {
	Charset                 string
	Columns                 columnDefs
	FreezeRow, FreezeColumn int
	AutoFilter, Strict      bool
}

// numericFormats are converted to numbers before validation.
var numericFormats = map[string]bool{
	"NUMERIC": true, "INTEGER": true, "DECIMAL": true, "PRICE": true, "PERCENT": true,
}

func copyFile(ctx context.Context, wb *validsheet.Workbook, reg *formats.Registry, sheetName, fn string, opts sheetOptions) error {
	cr, err := validsheet.OpenCSV(fn, opts.Charset)
	if err != nil {
		return err
	}
	defer cr.Close()

	header, err := cr.Read()
	if err != nil {
		return err
	}
	ws, err := validsheet.NewWorksheet(reg, sheetName)
	if err != nil {
		return err
	}
	numeric := make([]bool, len(header))
	for i, name := range header {
		def := opts.Columns.get(name)
		c, err := validsheet.NewColumn(reg, name, def.Format, def.Width)
		if err != nil {
			return err
		}
		if err = ws.AddColumn(c); err != nil {
			return err
		}
		numeric[i] = numericFormats[strings.ToUpper(def.Format)]
	}
	if opts.FreezeRow > 0 {
		if err = ws.FreezeRow(opts.FreezeRow); err != nil {
			return err
		}
	}
	if opts.FreezeColumn > 0 {
		if err = ws.FreezeColumn(opts.FreezeColumn); err != nil {
			return err
		}
	}
	ws.SetAutoFilter(opts.AutoFilter)
	if err = wb.AddWorksheet(ws); err != nil {
		return err
	}

	var skipped int
	for line := 2; ; line++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		row, err := cr.ReadValues()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		for i, v := range row {
			if i < len(numeric) && numeric[i] && v.Kind() == validsheet.KindString {
				if f, err := strconv.ParseFloat(v.Str(), 64); err == nil {
					row[i] = validsheet.Number(f)
				}
			}
		}
		if err = wb.AddRow(sheetName, row...); err != nil {
			if opts.Strict ||
				!(errors.Is(err, validsheet.ErrRowFormatMismatch) || errors.Is(err, validsheet.ErrColumnCountMismatch)) {
				return fmt.Errorf("line %d: %w", line, err)
			}
			logger.Warn("skip row", "sheet", sheetName, "line", line, "error", err)
			skipped++
		}
	}
	logger.Info("sheet done", "sheet", sheetName, "rows", wb.RowCount(sheetName), "skipped", skipped)
	return nil
}

type columnDef struct {
	Name, Format string
	Width        int
}

// columnDefs is a flag.Value collecting name:FORMAT[:width] definitions.
type columnDefs []columnDef

func (cs *columnDefs) String() string {
	if cs == nil {
		return ""
	}
	parts := make([]string, len(*cs))
	for i, c := range *cs {
		parts[i] = fmt.Sprintf("%s:%s:%d", c.Name, c.Format, c.Width)
	}
	return strings.Join(parts, ",")
}

func (cs *columnDefs) Set(s string) error {
	// the name may contain colons
	parts := strings.Split(s, ":")
	c := columnDef{Width: validsheet.DefaultWidth}
	if n := len(parts); n >= 3 {
		if w, err := strconv.Atoi(parts[n-1]); err == nil {
			c.Width = w
			parts = parts[:n-1]
		}
	}
	if len(parts) < 2 {
		return fmt.Errorf("%q: wanted name:FORMAT[:width]", s)
	}
	c.Name = strings.Join(parts[:len(parts)-1], ":")
	c.Format = parts[len(parts)-1]
	*cs = append(*cs, c)
	return nil
}

func (cs columnDefs) check(reg *formats.Registry) error {
	for _, c := range cs {
		if _, err := validsheet.NewColumn(reg, c.Name, c.Format, c.Width); err != nil {
			return fmt.Errorf("-col %s: %w", c.Name, err)
		}
	}
	return nil
}

func (cs columnDefs) get(name string) columnDef {
	for _, c := range cs {
		if c.Name == name {
			return c
		}
	}
	return columnDef{Name: name, Format: validsheet.DefaultFormat, Width: validsheet.DefaultWidth}
}
