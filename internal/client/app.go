package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/forkeys/internal/adapter"
	"github.com/MKhiriev/forkeys/internal/app"
	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/service"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
	"github.com/rs/zerolog"
)

const clientRole = "forkeys-client"

type App struct {
	buildInfo models.AppBuildInfo
	bootstrap Bootstrap

	passwords PasswordReader
	lines     LineReader
	clipboard Clipboard
	out       io.Writer
	errOut    io.Writer
	getenv    func(string) string
	now       func() time.Time

	// set by the persistent root flags
	overrides config.StructuredConfig

	// set on first use by services()
	cfg      *config.ClientConfig
	svc      *service.ClientServices
	closer   io.Closer
	logger   *logger.Logger
	fixedLog bool
}

type Option func(*App)

// WithBootstrap replaces the default wiring of the client services.
func WithBootstrap(b Bootstrap) Option {
	return func(a *App) { a.bootstrap = b }
}

// WithPrompts replaces the terminal prompts.
func WithPrompts(passwords PasswordReader, lines LineReader) Option {
	return func(a *App) {
		a.passwords = passwords
		a.lines = lines
	}
}

func WithClipboard(c Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

// WithOutput redirects normal and error output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

func WithEnv(getenv func(string) string) Option {
	return func(a *App) { a.getenv = getenv }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger makes the app log to l instead of the client log file.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.logger = l
		a.fixedLog = true
	}
}

func NewApp(buildInfo models.AppBuildInfo, opts ...Option) *App {
	prompt := newTerminalPrompt(os.Stdin, os.Stderr)
	a := &App{
		buildInfo: buildInfo,
		bootstrap: DefaultBootstrap,
		passwords: prompt,
		lines:     prompt,
		clipboard: systemClipboard{},
		out:       os.Stdout,
		errOut:    os.Stderr,
		getenv:    os.Getenv,
		now:       time.Now,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one command. Errors are reported on the error output before
// they are returned.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	a.shutdown()
	if err != nil {
		a.reportError(err)
	}
	return err
}

// DefaultBootstrap opens the configured vault store and connects the
// recovery tier to the registry server.
func DefaultBootstrap(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*service.ClientServices, io.Closer, error) {
	kv, err := store.NewClientStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening vault store: %w", err)
	}

	engine := crypto.NewEngine(crypto.Params{
		Time:      cfg.Crypto.Time,
		MemoryKiB: cfg.Crypto.MemoryKiB,
		Threads:   cfg.Crypto.Threads,
	})

	var recoveryAdapter adapter.RecoveryAdapter
	if ra, err := adapter.NewHTTPRecoveryAdapter(cfg.Adapter, logger); err != nil {
		logger.Warn().Err(err).Msg("registry server disabled")
	} else {
		recoveryAdapter = ra
	}

	services, err := service.NewClientServices(ctx, kv, engine, recoveryAdapter, logger)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}

	return services, kv, nil
}

// services loads the configuration and wires the client services on first
// use, so that commands like version work without a vault.
func (a *App) services(ctx context.Context) (*service.ClientServices, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	cfg, err := config.GetClientConfig(&a.overrides)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg

	if !a.fixedLog {
		var opts []logger.Option
		if level, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil {
			opts = append(opts, logger.WithLevel(level))
		}
		a.logger = logger.NewClientLogger(clientRole, cfg.App.LogDir, opts...)
	}

	svc, closer, err := a.bootstrap(ctx, cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.svc, a.closer = svc, closer

	return svc, nil
}

func (a *App) shutdown() {
	if a.svc != nil {
		a.svc.VaultService.Lock()
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logger.Err(err).Msg("error closing vault store")
		}
		a.closer = nil
	}
}

// masterPassword returns FORKEYS_PASSWORD or prompts for it.
func (a *App) masterPassword(prompt string) (string, error) {
	if password := a.getenv(PasswordEnv); password != "" {
		return password, nil
	}
	return a.passwords.ReadPassword(prompt)
}

// unlock wires the services and unlocks the vault.
func (a *App) unlock(ctx context.Context) (*service.ClientServices, error) {
	svc, err := a.services(ctx)
	if err != nil {
		return nil, err
	}
	if svc.VaultService.State() == service.StateUnlocked {
		return svc, nil
	}
	if svc.VaultService.State() == service.StateNoVault {
		return nil, service.ErrNoVaultFound
	}

	password, err := a.masterPassword("Master password: ")
	if err != nil {
		return nil, err
	}
	if err = svc.VaultService.Unlock(ctx, password); err != nil {
		return nil, err
	}

	return svc, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) reportError(err error) {
	a.logger.Err(err).Msg("command failed")

	var vaultErr *service.VaultError
	if !errors.As(err, &vaultErr) {
		fmt.Fprintf(a.errOut, "Error: %s\n", err)
		return
	}

	msg := vaultErr.Kind.Message()
	if vaultErr.Kind == service.KindUnknown && vaultErr.Err != nil {
		msg = vaultErr.Err.Error()
	}
	fmt.Fprintf(a.errOut, "Error: %s\n", msg)
	if hint := app.Hint(vaultErr.Kind); hint != "" {
		fmt.Fprintln(a.errOut, hint)
	}
}
