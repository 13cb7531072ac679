package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/lspwire/internal/cliconfig"
	"github.com/bft-labs/lspwire/internal/spool"
	"github.com/bft-labs/lspwire/internal/target"
	"github.com/bft-labs/lspwire/pkg/log"
	"github.com/bft-labs/lspwire/pkg/transport"
)

const longHelp = `Write Content-Length framed messages to an editor or language client.

Every message is framed as

  Content-Length: <bytes>\r\n\r\n<body>

and delivered whole, retrying interrupted and partial writes, or the command
fails. Targets: stdout, fd:<n>, fifo:<path>, unix:<path>, tcp:<host:port>,
ws://<url>.

Configuration comes from flags, then LSPWIRE_* environment variables, then
$HOME/.lspwire/config.toml.`

var exampleUsage = strings.TrimSpace(`
  lspwire send diagnostics.json
  echo '{"jsonrpc":"2.0","method":"exit"}' | lspwire lines --target unix:/run/lsp.sock
  lspwire watch --spool-dir ./outbox --target fifo:/tmp/editor.fifo --remove-sent
`)

// maxLineBytes bounds a single message in lines mode.
const maxLineBytes = 64 << 20

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// session is everything a subcommand needs once configuration is resolved.
type session struct {
	cfg    cliconfig.Config
	logger *log.ZerologAdapter
	ep     *target.Endpoint
	tr     *transport.Transport
	sender *deadlineSender
}

func (s *session) close() {
	st := s.tr.Stats()
	s.logger.Info("done",
		log.Uint64("frames", st.Frames),
		log.Uint64("bytes", st.WireBytes),
		log.Uint64("interrupts", st.Interrupts),
		log.Uint64("short_writes", st.ShortWrites),
	)
	if err := s.ep.Close(); err != nil {
		s.logger.Warn("close target", log.String("target", s.ep.Name), log.Err(err))
	}
}

// deadlineSender arms the endpoint's write deadline before each frame.
type deadlineSender struct {
	tr      *transport.Transport
	ep      *target.Endpoint
	timeout time.Duration
	logger  log.Logger
}

func (d *deadlineSender) Send(payload []byte) error {
	if d.timeout > 0 {
		err := d.ep.SetWriteDeadline(time.Now().Add(d.timeout))
		if err != nil {
			d.logger.Warn("write timeout not supported by target; sending without it",
				log.String("target", d.ep.Name), log.Err(err))
			d.timeout = 0
		}
	}
	return d.tr.Send(payload)
}

// openSession resolves and validates the configuration, and only then opens
// the target, which may block (a FIFO waits for its reader).
func openSession(ctx context.Context, cmd *cobra.Command, cfg cliconfig.Config, cfgPath string, validate func(*cliconfig.Config) error) (*session, error) {
	resolved, err := resolveConfig(cmd, cfg, cfgPath, validate)
	if err != nil {
		return nil, err
	}
	logger, err := log.NewZerologAdapter(os.Stderr, resolved.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration", log.Any("config", resolved))

	ep, err := target.Open(ctx, resolved.Target)
	if err != nil {
		return nil, err
	}
	tr := transport.New(ep.Channel,
		transport.WithLogger(logger),
		transport.WithBuffer(resolved.BufferSize),
	)
	return &session{
		cfg:    resolved,
		logger: logger,
		ep:     ep,
		tr:     tr,
		sender: &deadlineSender{tr: tr, ep: ep, timeout: resolved.WriteTimeout, logger: logger},
	}, nil
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "lspwire",
		Short:         "Write Content-Length framed messages to an editor",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.lspwire/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Target, "target", cfg.Target, "where to write frames")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "give up on a frame the peer does not drain in time (0 waits forever)")
	root.PersistentFlags().IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "reusable frame buffer size in bytes (0 disables reuse)")

	sendCmd := &cobra.Command{
		Use:   "send [file...]",
		Short: "Send each file, or all of stdin, as one message",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, cfg, cfgPath, (*cliconfig.Config).Validate)
			if err != nil {
				return err
			}
			defer s.close()
			return sendFiles(cmd.Context(), s.sender, args, cmd.InOrStdin())
		},
	}

	linesCmd := &cobra.Command{
		Use:   "lines",
		Short: "Send each line of stdin as one message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, cfg, cfgPath, (*cliconfig.Config).Validate)
			if err != nil {
				return err
			}
			defer s.close()
			return sendLines(cmd.Context(), s.sender, cmd.InOrStdin())
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Send files dropped into a spool directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, cfg, cfgPath, (*cliconfig.Config).ValidateWatch)
			if err != nil {
				return err
			}
			defer s.close()

			// Only the watcher shuts down gracefully. send and lines keep the
			// default signal behaviour so a blocked read or write still dies.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := spool.New(spool.Config{
				Dir:           s.cfg.SpoolDir,
				DebounceDelay: s.cfg.Debounce,
				RemoveSent:    s.cfg.RemoveSent,
			}, s.sender, s.logger)

			if s.cfg.Once {
				_, err := w.SendExisting()
				return err
			}
			return w.Run(ctx)
		},
	}
	watchCmd.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory to watch for message files")
	watchCmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a changed file is sent")
	watchCmd.Flags().BoolVar(&cfg.RemoveSent, "remove-sent", cfg.RemoveSent, "delete files after sending them")
	watchCmd.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "send files already in the spool directory and exit")

	root.AddCommand(sendCmd, linesCmd, watchCmd)

	if err := root.Execute(); err != nil {
		logger, lerr := log.NewZerologAdapter(os.Stderr, "error")
		if lerr != nil {
			fmt.Fprintln(os.Stderr, "lspwire:", err)
		} else {
			logger.Error("lspwire", log.Err(err))
		}
		os.Exit(1)
	}
}

// resolveConfig layers the config file and environment under explicitly set
// flags, then validates the result.
func resolveConfig(cmd *cobra.Command, cfg cliconfig.Config, cfgPath string, validate func(*cliconfig.Config) error) (cliconfig.Config, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	} else if cfgPath != "" {
		return cfg, fmt.Errorf("load config: %s not found", cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}
	if err := validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func sendFiles(ctx context.Context, s transportSender, paths []string, stdin io.Reader) error {
	if len(paths) == 0 {
		payload, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.Send(payload)
	}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if err := s.Send(payload); err != nil {
			return fmt.Errorf("send %s: %w", p, err)
		}
	}
	return nil
}

// sendLines sends each non-blank line of r as one message until r is
// exhausted or ctx is done. Reading happens on its own goroutine so that a
// read blocked on an idle terminal or pipe does not hold up cancellation.
func sendLines(ctx context.Context, s transportSender, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
		for sc.Scan() {
			line := sc.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			select {
			case lines <- bytes.Clone(line):
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return scanResult(ctx, scanErr)
			}
			if err := s.Send(line); err != nil {
				return err
			}
		}
	}
}

func scanResult(ctx context.Context, scanErr <-chan error) error {
	select {
	case err := <-scanErr:
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("read stdin: line longer than %d bytes", maxLineBytes)
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return nil
	default:
		// The reader gave up because ctx was cancelled.
		return ctx.Err()
	}
}

// transportSender is satisfied by *transport.Transport and deadlineSender.
type transportSender interface {
	Send(payload []byte) error
}
