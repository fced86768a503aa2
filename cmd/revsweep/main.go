package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/config/projectconfig"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := newApp(mainLogger)
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func newApp(mainLogger applogger.Logger) *cli.App {
	return &cli.App{
		Name: "revsweep",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "revsweep.json",
				EnvVars: []string{"REVSWEEP_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			projectConfig, err := projectconfig.Load(c.String("config"))
			if err != nil {
				return err
			}
			container := dependency.NewDependencyContainer(mainLogger, projectConfig, os.Getenv("SILENT") != "")
			c.Context = dependency.ContainerToContext(c.Context, container)
			return nil
		},
		Commands: cli.Commands{
			&cli.Command{
				Name: "sync",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "repository",
					},
				},
				Action: func(c *cli.Context) error {
					return sync(c.Context, c.String("repository"))
				},
			},
			&cli.Command{
				Name: "log",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "repository",
						Required: true,
					},
					&cli.StringFlag{
						Name: "since",
					},
					&cli.StringFlag{
						Name: "until",
					},
					&cli.BoolFlag{
						Name: "json",
					},
				},
				Action: func(c *cli.Context) error {
					return printLog(c.Context, logOptions{
						repository: c.String("repository"),
						since:      c.String("since"),
						until:      c.String("until"),
						asJSON:     c.Bool("json"),
					})
				},
			},
			&cli.Command{
				Name: "churn",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "repository",
						Required: true,
					},
					&cli.BoolFlag{
						Name: "by-date",
					},
					&cli.StringSliceFlag{
						Name: "omit-sha",
					},
					&cli.StringSliceFlag{
						Name: "omit-path",
					},
				},
				Action: func(c *cli.Context) error {
					return printChurn(c.Context, churnOptions{
						repository: c.String("repository"),
						byDate:     c.Bool("by-date"),
						omitSHAs:   c.StringSlice("omit-sha"),
						omitPaths:  c.StringSlice("omit-path"),
					})
				},
			},
			&cli.Command{
				Name: "info",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "repository",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "rev",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return printInfo(c.Context, c.String("repository"), c.String("rev"))
				},
			},
			&cli.Command{
				Name: "switch",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "rev",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return switchRevision(c.Context, c.String("workspace"), c.String("rev"))
				},
			},
			&cli.Command{
				Name: "refresh",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "workspace",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return refresh(c.Context, c.String("workspace"))
				},
			},
		},
	}
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
