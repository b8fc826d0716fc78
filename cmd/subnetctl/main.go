package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Flarenzy/subnetcalc/internal/cli"
	"github.com/Flarenzy/subnetcalc/pkg/client"
)

const usage = `subnetctl - IPv4 subnet calculator client

Usage:
  subnetctl [flags] info <ip> [prefix]
  subnetctl [flags] split <cidr> <subnets>
  subnetctl [flags] history
  subnetctl [flags] user
  subnetctl [flags] export [file]
  subnetctl [flags] logout

Flags:
  -config <path>   config file (default ~/.config/subnetctl.yaml)
  -server <url>    calculator API base URL (overrides config)
`

func main() {
	logger := log.New(os.Stderr)

	configPath := flag.String("config", "", "config file path")
	server := flag.String("server", "", "calculator API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("could not load config", "err", err)
	}
	if *server != "" {
		cfg.Server = *server
	}

	// The session cookie outlives the process, like a browser's would; every
	// invocation resumes it from disk and writes it back on the way out.
	sessionPath := cli.SessionPath()
	c, err := client.New(cfg.Server,
		client.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		client.WithSessionToken(cli.LoadSession(sessionPath)),
	)
	if err != nil {
		logger.Fatal("could not create client", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := run(ctx, c, args)

	if err := cli.SaveSession(sessionPath, c.SessionToken()); err != nil {
		logger.Warn("could not save session", "err", err)
	}

	if runErr != nil {
		var valErr *client.ValidationError
		var apiErr *client.APIError
		switch {
		case errors.As(runErr, &valErr):
			fmt.Println(cli.Failure(valErr.Error()))
		case errors.As(runErr, &apiErr):
			fmt.Println(cli.Failure(apiErr.Message))
		case errors.Is(runErr, client.ErrUnreachable):
			fmt.Println(cli.Failure("server unreachable"))
		default:
			fmt.Println(cli.Failure(runErr.Error()))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "info":
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("usage: subnetctl info <ip> [prefix]")
		}
		prefix := 24
		if len(rest) == 2 {
			p, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("prefix must be a number, got %q", rest[1])
			}
			prefix = p
		}
		info, err := c.IPInfo(ctx, rest[0], prefix)
		if err != nil {
			return err
		}
		fmt.Println(cli.Calculation(info))
		fmt.Println(cli.Success("address described"))
		return nil

	case "split":
		if len(rest) != 2 {
			return fmt.Errorf("usage: subnetctl split <cidr> <subnets>")
		}
		n, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("subnets must be a number, got %q", rest[1])
		}
		plan, err := c.Subnetting(ctx, rest[0], n)
		if err != nil {
			return err
		}
		fmt.Println(cli.Subnets(plan))
		fmt.Println(cli.Success("network split"))
		return nil

	case "history":
		history, err := c.History(ctx)
		if err != nil {
			return err
		}
		fmt.Println(cli.HistoryList(history))
		return nil

	case "user":
		session, err := c.User(ctx)
		if err != nil {
			return err
		}
		fmt.Println(cli.SessionInfo(session))
		return nil

	case "export":
		return export(ctx, c, rest)

	case "logout":
		if err := c.Logout(ctx); err != nil {
			return err
		}
		fmt.Println(cli.Success("session ended, history cleared"))
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func export(ctx context.Context, c *client.Client, rest []string) error {
	if len(rest) > 1 {
		return fmt.Errorf("usage: subnetctl export [file]")
	}

	tmp, err := os.CreateTemp("", "subnetctl-export-*.json")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	filename, err := c.Export(ctx, tmp)
	closeErr := tmp.Close()
	if err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if closeErr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write export file: %w", closeErr)
	}

	// The server suggests a name; an explicit argument wins.
	if len(rest) == 1 {
		filename = rest[0]
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save export to %s: %w", filename, err)
	}

	fmt.Println(cli.Success("session exported to " + filename))
	return nil
}
