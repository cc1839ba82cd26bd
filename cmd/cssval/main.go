/*
Command cssval evaluates, converts and checks CSS values.

    cssval eval "calc(100% - 2em)"
    cssval convert --to oklch "#663399"
    cssval delta red "lab(54% 81 70)"
    cssval minify "0.50em 0px"
    cssval match "10px" "<length> | auto"
    cssval check styles.css

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/npillmayer/cssval/config"
	"github.com/npillmayer/cssval/internal/zapadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	cli "github.com/urfave/cli/v3"
)

const version = "0.1.0"

// env holds what the sub-commands share.
type env struct {
	conf *config.Config
}

type envKey struct{}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{}
}

// tracer traces with key 'cssval.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.cli")
}

// initializeAppContext loads the configuration and sets up tracing after the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)
	var err error
	if e.conf, err = config.Load(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		for key := range e.conf.Tracing.Levels {
			e.conf.SetTraceLevel(key, "Debug")
		}
		e.conf.SetTraceLevel("cssval.cli", "Debug")
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("zap", zapadapter.GetAdapter(), false)
	if err = trace2go.ConfigureRoot(e.conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return ctx, fmt.Errorf("unable to configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("cssval %s (%s) started with %v", version, runtime.Version(), os.Args)
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	tracer().Debugf("cssval ended, args %v", cmd.Args().Slice())
	trace2go.Teardown()
	return nil
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "cssval",
		Usage:           "evaluate, convert and check CSS values",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "trace all packages at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "Evaluates a math expression, e.g. calc() or min()",
				ArgsUsage: "EXPRESSION",
				Action:    evalCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "tree", Aliases: []string{"t"}, Usage: "print the expression tree before the result"},
				},
			},
			{
				Name:      "convert",
				Usage:     "Converts a color to another color model",
				ArgsUsage: "COLOR",
				Action:    convertCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: "rgb",
						Usage: "target `MODEL` (rgb, hsl, hwb, lab, lch, oklab, oklch, hex)"},
					&cli.BoolFlag{Name: "strict", Usage: "fail for colors outside the target gamut instead of clamping"},
				},
			},
			{
				Name:      "delta",
				Usage:     "Computes the CIEDE2000 color difference of two colors",
				ArgsUsage: "COLOR COLOR",
				Action:    deltaCommand,
			},
			{
				Name:      "minify",
				Usage:     "Prints the shortest serialization of a value",
				ArgsUsage: "VALUE",
				Action:    minifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "property", Aliases: []string{"p"}, Usage: "`NAME` of the property the value belongs to"},
				},
			},
			{
				Name:      "match",
				Usage:     "Matches a value against a grammar like \"<length> | auto\"",
				ArgsUsage: "VALUE GRAMMAR",
				Action:    matchCommand,
			},
			{
				Name:      "check",
				Usage:     "Checks the declarations of a style sheet or of the <style> elements of an HTML file",
				ArgsUsage: "FILE",
				Action:    checkCommand,
			},
			{
				Name:   "dumpconfig",
				Usage:  "Dumps the active configuration (YAML)",
				Action: dumpConfigCommand,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{}),
		os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cssval: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
