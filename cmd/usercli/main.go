package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"user-admin/internal/client"
	"user-admin/internal/config"
	"user-admin/internal/logger"
	"user-admin/internal/store"
	"user-admin/internal/view"
)

const usage = `usage: usercli [flags] <command> [command flags]

commands:
  list                          show all users (route /)
  about                         show the about page (route /about)
  open <path>                   render the view routed at path
  create --name N --email E     create a user
  update --id I [--name N] [--email E]
                                edit a user, unset fields keep their value
  delete --id I                 delete a user
  watch                         print user events from Kafka
  token --subject S             mint a bearer token for the API
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app is one CLI invocation: a store talking to the API and the router over it.
type app struct {
	cfg    *config.CLIConfig
	log    zerolog.Logger
	out    io.Writer
	store  *store.Store
	router *view.Router
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("usercli", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	cfg, err := config.NewCLI(fs, ".")
	if err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := logger.NewWithWriter(os.Stderr, "text", cfg.LogLevel)
	if err != nil {
		return err
	}

	opts := []client.Option{client.WithTimeout(cfg.Timeout)}
	if cfg.Token != "" {
		opts = append(opts, client.WithToken(cfg.Token))
	}
	s := store.New(client.New(cfg.APIBase, opts...), log)
	a := &app{
		cfg:    cfg,
		log:    log,
		out:    out,
		store:  s,
		router: view.NewRouter(view.NewUsersView(s)),
	}

	cmd, rest := "list", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "list":
		return a.router.Navigate(ctx, "/", out)
	case "about":
		return a.router.Navigate(ctx, "/about", out)
	case "open":
		if len(rest) != 1 {
			return fmt.Errorf("open takes exactly one path")
		}
		return a.router.Navigate(ctx, rest[0], out)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "token":
		return a.token(rest)
	case "help":
		fs.Usage()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
