package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/gnuflag"
	"go.uber.org/zap"

	"simplylife/internal/registration/config"
	"simplylife/internal/registration/form"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger    = "failed to initialize logger"
	ErrLoadConfig    = "failed to load configuration"
	ErrParseFlags    = "failed to parse flags"
	ErrMissingID     = "missing --id flag"
	ErrFetchProps    = "failed to fetch registration props"
	ErrReadImage     = "failed to read image"
	ErrSetField      = "failed to set field"
	ErrSubmitForm    = "failed to submit registration"
	ErrUnexpectedArg = "unexpected arguments"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// options - значения флагов командной строки.
type options struct {
	serverURL    string
	id           string
	locale       string
	image        string
	showPassword bool
	fields       map[string]*string
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	fs := gnuflag.NewFlagSet("finish-registration", gnuflag.ContinueOnError)

	opts := &options{fields: map[string]*string{}}
	fs.StringVar(&opts.serverURL, "server", cfg.ServerURL, "CMS server URL")
	fs.StringVar(&opts.id, "id", "", "invited app user id")
	fs.StringVar(&opts.locale, "locale", cfg.Locale, "interface locale (fr, en)")
	fs.StringVar(&opts.image, "image", "", "path to a profile picture")
	fs.BoolVar(&opts.showPassword, "show-password", false, "print the password in clear text")

	for _, field := range []string{
		schema.FieldPassword,
		schema.FieldLastname,
		schema.FieldFirstname,
		schema.FieldCabinet,
		schema.FieldAdressCabinet,
		schema.FieldBirthday,
		schema.FieldEntryDate,
		schema.FieldRGPD,
		schema.FieldPhone,
	} {
		opts.fields[field] = fs.String(strings.ReplaceAll(field, "_", "-"), "", field+" value")
	}

	if err := fs.Parse(true, args); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrParseFlags, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%s: %v", ErrUnexpectedArg, fs.Args())
	}
	if opts.id == "" {
		return nil, errors.New(ErrMissingID)
	}
	return opts, nil
}

// run выполняет один сценарий завершения регистрации и возвращает код выхода.
func run(ctx context.Context, args []string, cfg *config.Config, client *http.Client, out io.Writer) int {
	log := logger.Log(ctx)

	opts, err := parseFlags(args, cfg)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}

	cfg.Locale = opts.locale
	props, err := form.FetchProps(ctx, client, opts.serverURL, opts.id, cfg.GetLocale())
	if err != nil {
		log.Error(ctx, ErrFetchProps, zap.Error(err))
		fmt.Fprintln(out, err)
		return 1
	}

	controller := form.NewController(props, form.NewSubmitter(props.ServerURL, client))
	for field, value := range opts.fields {
		if *value == "" {
			continue
		}
		if err := controller.Set(field, *value); err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", ErrSetField, field, err)
			return 2
		}
	}

	if opts.image != "" {
		content, err := os.ReadFile(opts.image)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", ErrReadImage, err)
			return 1
		}
		if err := controller.AttachImage(filepath.Base(opts.image), content); err != nil {
			fmt.Fprintf(out, "%s: %v\n", ErrReadImage, err)
			return 1
		}
	}
	if opts.showPassword {
		controller.TogglePasswordVisibility()
	}

	err = controller.Submit(ctx)
	fmt.Fprint(out, form.Render(controller.State()).String())
	if err != nil {
		log.Debug(ctx, ErrSubmitForm, zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	bootstrap := logger.NewNop()
	ctx := logger.NewContext(context.Background(), bootstrap)

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrLoadConfig, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.GetEnvironment(), cfg.LoggerLevel)
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	ctx = logger.NewContext(logger.NewRequestIDContext(context.Background(), ""), log)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	code := run(ctx, os.Args[1:], cfg, &http.Client{}, os.Stdout)
	cancel()

	if err := log.Sync(); err != nil {
		errMsg := err.Error()
		if !strings.Contains(errMsg, ErrSyncStderr) && !strings.Contains(errMsg, ErrSyncStdout) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
	os.Exit(code)
}
