// Command seed creates an enterprise administrator account.
//
//	go run ./cmd/seed -email shop@example.com -password 's3cret-pass' -name "Barbearia"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/PabloST8/xcorte-sub001/internal/account"
	"github.com/PabloST8/xcorte-sub001/internal/auth"
	"github.com/PabloST8/xcorte-sub001/internal/config"
	"github.com/PabloST8/xcorte-sub001/internal/db"
)

var (
	errUsage = errors.New("email and password are required")
	errNoDSN = errors.New("DB_DSN is required to seed accounts")
)

type options struct {
	email    string
	password string
	name     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			stop()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.email, "email", "", "enterprise email, used as the booking partition key")
	fs.StringVar(&opts.password, "password", "", "administrator password (min 8 characters)")
	fs.StringVar(&opts.name, "name", "", "display name")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.email == "" || opts.password == "" {
		fs.Usage()
		return options{}, errUsage
	}
	return opts, nil
}

func run(ctx context.Context, args []string, output io.Writer) error {
	opts, err := parseFlags(args, output)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBDSN == "" {
		return errNoDSN
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer pool.Close()

	svc := account.NewService(account.NewPgxRepository(pool), auth.NewBcryptHasher(cfg.BcryptCost))
	a, err := svc.Register(ctx, opts.email, opts.password, opts.name)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	log.Printf("account %s created for %s", a.ID, a.Email)
	return nil
}
