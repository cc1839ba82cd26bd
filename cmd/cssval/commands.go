package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/cssval"
	"github.com/npillmayer/cssval/config"
	"github.com/npillmayer/cssval/css/color"
	"github.com/npillmayer/cssval/css/sheet"
	"github.com/npillmayer/cssval/css/value"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
)

var errUsage = errors.New("malformed command line")

// argument returns the arguments of a command as one text, as values
// containing spaces may be given unquoted.
func argument(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", fmt.Errorf("%w: missing argument %s", errUsage, cmd.ArgsUsage)
	}
	return strings.Join(cmd.Args().Slice(), " "), nil
}

func configOf(ctx context.Context) *config.Config {
	e := envFromContext(ctx)
	if e.conf == nil {
		e.conf, _ = config.Default()
	}
	return e.conf
}

func output(w io.Writer, conf *config.Config, v value.Value) {
	if conf.Serialization.Minify {
		fmt.Fprintln(w, v.MinifiedCSSText(""))
		return
	}
	fmt.Fprintln(w, v.CSSText())
}

func evalCommand(ctx context.Context, cmd *cli.Command) error {
	text, err := argument(cmd)
	if err != nil {
		return err
	}
	conf := configOf(ctx)
	if cmd.Bool("tree") {
		v, err := cssval.ParseValue(text)
		if err != nil {
			return err
		}
		if e, ok := v.(*value.ExpressionValue); ok {
			fmt.Fprint(cmd.Root().Writer, value.DumpExpression(e.Expr))
		}
	}
	n, err := cssval.Evaluate(text, conf.Context())
	if err != nil {
		return fmt.Errorf("cannot evaluate %q: %w", text, err)
	}
	output(cmd.Root().Writer, conf, n)
	return nil
}

func convertCommand(ctx context.Context, cmd *cli.Command) error {
	text, err := argument(cmd)
	if err != nil {
		return err
	}
	conf := configOf(ctx)
	c, err := cssval.ParseColor(text)
	if err != nil {
		return err
	}
	mode := conf.GamutMode()
	if cmd.Bool("strict") {
		mode = color.Strict
	}
	to := strings.ToLower(cmd.String("to"))
	if to == "hex" || (to == "rgb" && conf.Color.HexOutput) {
		if mode == color.Strict {
			if _, err = c.ToRGB(mode); err != nil {
				return err
			}
		}
		hex, err := c.HexString()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.Root().Writer, hex)
		return nil
	}
	r, err := convert(c, to, mode)
	if err != nil {
		return fmt.Errorf("cannot convert %q to %s: %w", text, to, err)
	}
	output(cmd.Root().Writer, conf, r)
	return nil
}

func convert(c color.Color, to string, mode color.GamutMode) (color.Color, error) {
	var r color.Color
	var err error
	switch to {
	case "rgb":
		var x *color.RGB
		x, err = c.ToRGB(mode)
		r = x
	case "hsl":
		var x *color.HSL
		x, err = c.ToHSL(mode)
		r = x
	case "hwb":
		var x *color.HWB
		x, err = c.ToHWB(mode)
		r = x
	case "lab":
		var x *color.Lab
		x, err = c.ToLab()
		r = x
	case "lch":
		var x *color.LCh
		x, err = c.ToLCh()
		r = x
	case "oklab":
		var x *color.OKLab
		x, err = c.ToOKLab()
		r = x
	case "oklch":
		var x *color.OKLCh
		x, err = c.ToOKLCh()
		r = x
	default:
		return nil, fmt.Errorf("%w: unknown color model %q", errUsage, to)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func deltaCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("%w: expected two colors", errUsage)
	}
	a, err := cssval.ParseColor(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := cssval.ParseColor(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	d, err := a.DeltaE2000(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "%.4f\n", d)
	return nil
}

func minifyCommand(ctx context.Context, cmd *cli.Command) error {
	text, err := argument(cmd)
	if err != nil {
		return err
	}
	s, err := cssval.Minify(text, cmd.String("property"))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, s)
	return nil
}

func matchCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("%w: expected a value and a grammar", errUsage)
	}
	r, err := cssval.Match(cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, r)
	return nil
}

func checkCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected one file", errUsage)
	}
	fname := cmd.Args().Get(0)
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	w := cmd.Root().ErrWriter
	h := sheet.ErrorHandlerFunc(func(selector string, d *sheet.Declaration, err error) {
		fmt.Fprintf(w, "%s: %s { %s }: %v\n", fname, strings.TrimSpace(selector), d, err)
	})
	loader := cssval.NewLoader(h)
	var s *sheet.StyleSheet
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".html", ".htm", ".xhtml":
		s, err = loader.ParseHTML(f)
	default:
		var data []byte
		if data, err = io.ReadAll(f); err != nil {
			return err
		}
		s, err = loader.Parse(string(data))
	}
	if s == nil {
		return err
	}
	n := 0
	s.Declarations(func(*sheet.Rule, *sheet.Declaration) { n++ })
	dropped := len(multierr.Errors(err))
	fmt.Fprintf(cmd.Root().Writer, "%s: %d declarations, %d dropped\n", fname, n, dropped)
	if dropped > 0 {
		return fmt.Errorf("%d invalid declarations in %s", dropped, fname)
	}
	return nil
}

func dumpConfigCommand(ctx context.Context, cmd *cli.Command) error {
	data, err := config.Dump(configOf(ctx))
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}
