package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vk/nestgo/internal/converter"
	"github.com/vk/nestgo/internal/ctxlog"
	"github.com/vk/nestgo/internal/profile"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Run executes one conversion: resolve the nesting levels, read the records,
// build the tree, write the export. Converter failures come back with the
// message the tool reports; the caller only maps the error to an exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	levels, err := a.resolveLevels(ctx)
	if err != nil {
		return err
	}

	data, err := a.readRecords()
	if err != nil {
		return err
	}
	a.logger.Debug("Input read.", "bytes", len(data))

	conv := converter.New(levels)
	if err := conv.CreateTree(ctx, data); err != nil {
		return a.classify(err)
	}

	out, err := conv.ExportTree(ctx)
	if err != nil {
		return a.classify(err)
	}

	a.logger.Debug("App.Run method finished.")
	return a.writeTree(out)
}

// resolveLevels returns the nesting levels for this run, straight from the
// config or from the selected profile.
func (a *App) resolveLevels(ctx context.Context) ([]string, error) {
	if len(a.config.Levels) > 0 {
		return a.config.Levels, nil
	}

	set, err := profile.Load(ctx, a.config.ProfilesPath)
	if err != nil {
		return nil, err
	}
	prof, err := set.Lookup(a.config.ProfileName)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Profile selected.", "profile", prof.Name, "levels", prof.Levels)
	return prof.Levels, nil
}

// readRecords drains the configured input stream. A Unicode byte order mark,
// if present, selects the decoding; input without one is read as UTF-8.
func (a *App) readRecords() ([]byte, error) {
	in := a.inR
	if path := a.config.InputPath; path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	bomAware := transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return io.ReadAll(bomAware)
}

// writeTree writes the exported tree and a trailing newline to the
// configured output stream.
func (a *App) writeTree(data []byte) (err error) {
	w := a.outW
	if path := a.config.OutputPath; path != "" && path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			err = errors.CombineErrors(err, f.Close())
		}()
		w = f
	}

	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// classify translates a converter failure into the failure message the tool
// reports, emitting one diagnostic line per offending record first when
// validation found incomplete records.
func (a *App) classify(err error) error {
	var attrErr *converter.AttributeError
	switch {
	case errors.Is(err, converter.ErrDuplicateNodesFound):
		return errors.Wrap(err, "Duplicate nodes found")
	case errors.As(err, &attrErr):
		for _, v := range attrErr.Violations {
			fmt.Fprintf(a.errW, "Elements missing for record %s\n", converter.DescribeRecord(v.Record))
		}
		return errors.Wrap(err, "Badly formed input data")
	case errors.Is(err, converter.ErrInvalidDataStructure):
		return errors.Wrap(err, "Invalid input data")
	case converter.IsDecodeError(err):
		return errors.Wrap(err, "Invalid json in input data")
	default:
		return err
	}
}
