package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

func main() {
	if err := New().Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// App is the command-line application
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

// grammarOptions are shared by every command deriving an L-system
type grammarOptions struct {
	axiom      string
	rules      []string
	configPath string
	logLevel   string
	logFormat  string
}

func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "gemoturtle",
		Short: "Derive L-systems and draw them with a turtle",
		Long: `gemoturtle rewrites an axiom through production rules, generation after
generation, then walks the result with a turtle to draw it.

Rules are given as trigger=replacement, for example:
  gemoturtle draw --axiom F --rule 'F=FF+[+F-F-F]-[-F+F+F]' -n 4 -o plant.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newDeriveCmd(),
		app.newDrawCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the application, stopping derivation on SIGINT or SIGTERM.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the application with specific arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "gemoturtle version %s\n", Version)
		},
	}
}

func addGrammarFlags(cmd *cobra.Command, opts *grammarOptions) {
	cmd.Flags().StringVarP(&opts.axiom, "axiom", "a", "", "Axiom, one letter per rune (required)")
	cmd.Flags().StringArrayVarP(&opts.rules, "rule", "r", nil, "Production rule trigger=replacement, repeatable")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a settings file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format (console or json)")

	_ = cmd.MarkFlagRequired("axiom")
}
