package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"tgsend/internal/app"
	"tgsend/internal/config"
)

const longHelp = `
Send Telegram messages from your own account (not a bot).

Credentials come from the environment or a .env file in the working
directory: API_ID, API_HASH and PHONE_NUMBER are required, SESSION_NAME
is optional. Get API credentials at https://my.telegram.org. The first
run asks for the login code (and the 2FA password if set); after that
the saved session signs in silently.
`

var exampleUsage = strings.TrimSpace(`
  tgsend @alice "hello there"
  tgsend -b recipients.txt "same message for everyone" -d 2s
  tgsend -i
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.Default()
	var (
		cfgPath     string
		interactive bool
		bulkFile    string
	)

	root := &cobra.Command{
		Use:           "tgsend [flags] <handle> <message>",
		Short:         "Send Telegram messages from your personal account",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgPath != "" {
				fc, err := config.LoadFile(cfgPath)
				if err != nil {
					return err
				}
				if err := config.ApplyFile(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := config.ApplyEnv(&cfg, changed); err != nil {
				return err
			}
			if cfg.Debug {
				cfg.LogLevel = "DEBUG"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := app.Options{Interactive: interactive, BulkFile: bulkFile}
			switch {
			case interactive:
				if len(args) > 0 {
					return fmt.Errorf("interactive mode takes no positional arguments")
				}
			case bulkFile != "":
				if len(args) != 1 {
					return fmt.Errorf("bulk mode takes exactly one argument: the message text (quote it)")
				}
				opts.Message = args[0]
			default:
				if len(args) != 2 {
					return fmt.Errorf("need a recipient handle and a message (quote the message), or use -i / -b")
				}
				opts.Handle = args[0]
				opts.Message = args[1]
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run(ctx, opts)
		},
	}

	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for recipients and messages on stdin")
	root.Flags().StringVarP(&bulkFile, "bulk", "b", "", "file with one recipient handle per line")
	root.Flags().DurationVarP(&cfg.Delay, "delay", "d", cfg.Delay, "pause between messages in bulk mode")
	root.Flags().IntVar(&cfg.FloodRetries, "flood-retries", cfg.FloodRetries, "times to wait out a flood limit before giving up")
	root.Flags().StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "directory holding the session database")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write JSON logs to this file (empty disables)")
	root.Flags().StringVar(&cfgPath, "config", "", "path to a YAML or JSON config file")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging, including client internals")

	if err := root.Execute(); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}
