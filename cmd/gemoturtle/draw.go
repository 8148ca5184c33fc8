package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aabizri/gemoturtle/internal/config"
	"github.com/aabizri/gemoturtle/internal/logging"
	"github.com/aabizri/gemoturtle/render"
	"github.com/aabizri/gemoturtle/scale"
	"github.com/aabizri/gemoturtle/turtle"
)

type drawOptions struct {
	grammarOptions
	generations uint
	step        float64
	scale       string
	angle       string
	heading     string
	branchScale float64
	format      string
	width       int
	height      int
	strict      bool
	output      string
	vars        []string
}

func (a *App) newDrawCmd() *cobra.Command {
	opts := &drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Derive an L-system and draw it",
		Long: `Derive the axiom, shrinking the step after every generation, then walk the
result with a turtle and render the segments.

Angles are expressions in degrees. The scale is either a factor or an
expression over generation, length, step, prev_N and --var variables.

Examples:
  # Fractal plant
  gemoturtle draw -a F -r 'F=FF+[+F-F-F]-[-F+F+F]' -n 4 -o plant.png

  # Koch curve with an expression-driven step
  gemoturtle draw -a F -r 'F=F+F--F+F' --angle 60 --heading 0 --scale 'step / 3' -n 4 -f svg -o koch.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.draw(cmd.Context(), cmd, opts)
		},
	}

	addGrammarFlags(cmd, &opts.grammarOptions)
	cmd.Flags().UintVarP(&opts.generations, "generations", "n", 0, "Number of generations (overrides config)")
	cmd.Flags().Float64Var(&opts.step, "step", 0, "Step length at generation 0 (overrides config)")
	cmd.Flags().StringVar(&opts.scale, "scale", "", "Step scaling per generation (overrides config)")
	cmd.Flags().StringVar(&opts.angle, "angle", "", "Turn angle in degrees (overrides config)")
	cmd.Flags().StringVar(&opts.heading, "heading", "", "Initial heading in degrees (overrides config)")
	cmd.Flags().Float64Var(&opts.branchScale, "branch-scale", 0, "Step scaling inside each branch (overrides config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: png, svg or text (overrides config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Canvas width (overrides config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Canvas height (overrides config)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on unclosed branches")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "Expression variable name=value, repeatable")

	return cmd
}

// applyFlags overrides settings with the flags given on the command line
func (opts *drawOptions) applyFlags(cmd *cobra.Command, settings *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("generations") {
		settings.Generations = opts.generations
	}
	if flags.Changed("step") {
		settings.Step = opts.step
	}
	if flags.Changed("scale") {
		settings.Scale = opts.scale
	}
	if flags.Changed("angle") {
		settings.Angle = opts.angle
	}
	if flags.Changed("heading") {
		settings.Heading = opts.heading
	}
	if flags.Changed("branch-scale") {
		settings.BranchScale = opts.branchScale
	}
	if flags.Changed("format") {
		settings.Canvas.Format = opts.format
	}
	if flags.Changed("width") {
		settings.Canvas.Width = opts.width
	}
	if flags.Changed("height") {
		settings.Canvas.Height = opts.height
	}
	if flags.Changed("strict") {
		settings.Strict = opts.strict
	}
}

func (a *App) draw(ctx context.Context, cmd *cobra.Command, opts *drawOptions) error {
	s, err := a.newSession(&opts.grammarOptions)
	if err != nil {
		return err
	}
	opts.applyFlags(cmd, s.settings)
	if err := s.settings.Validate(); err != nil {
		return err
	}

	vars, err := parseVars(opts.vars)
	if err != nil {
		return err
	}
	scaler, err := scale.Parse(s.settings.Scale)
	if err != nil {
		return err
	}
	angle, err := scale.Evaluate(s.settings.Angle, &scale.Snapshot{Inner: vars})
	if err != nil {
		return errors.Wrap(err, "angle")
	}
	heading, err := scale.Evaluate(s.settings.Heading, &scale.Snapshot{Inner: vars})
	if err != nil {
		return errors.Wrap(err, "heading")
	}

	started := time.Now()
	snapshot := &scale.Snapshot{
		Inner:  vars,
		Step:   s.settings.Step,
		Angle:  angle,
		Length: len(s.lsystem.Sequence()),
	}
	for s.lsystem.Generation() < s.settings.Generations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.lsystem.AdvanceWithin(s.limit()); err != nil {
			s.event(s.logger.Error()).Add(logging.ErrorField(err)).Msg("derivation stopped")
			return err
		}

		snapshot.Generation = s.lsystem.Generation()
		snapshot.Length = len(s.lsystem.Sequence())
		next, err := scaler.Next(snapshot.Step, snapshot)
		if err != nil {
			return errors.Wrapf(err, "scaling step at generation %d", snapshot.Generation)
		}
		snapshot.Record(next)
	}

	cfg := turtle.DefaultConfig()
	cfg.BranchScale = s.settings.BranchScale
	initial := turtle.State{
		Heading:    turtle.Degrees(heading),
		StepLength: snapshot.Step,
		TurnAngle:  turtle.Degrees(angle),
	}

	pass, interpretErr := turtle.Interpret(s.lsystem.Sequence(), initial, cfg)
	if interpretErr != nil {
		s.event(s.logger.Error()).
			Add(logging.ErrorField(interpretErr), logging.Segments(len(pass.Segments))).
			Msg("interpretation aborted, drawing what was emitted")
	}
	if unclosed := pass.Unclosed(); unclosed != nil {
		if s.settings.Strict {
			return unclosed
		}
		s.event(s.logger.Warn()).Add(logging.Depth(pass.Depth)).Msg(unclosed.Error())
	}

	renderer, err := newRenderer(s.settings.Canvas)
	if err != nil {
		return err
	}
	if err := a.writeOutput(opts.output, renderer, pass.Segments); err != nil {
		return err
	}

	s.event(s.logger.Info()).
		Add(
			logging.Generation(s.lsystem.Generation()),
			logging.Length(len(s.lsystem.Sequence())),
			logging.Segments(len(pass.Segments)),
			logging.Output(opts.output),
			logging.Duration(time.Since(started)),
		).
		Msg("drawn")

	return interpretErr
}

func newRenderer(canvas config.Canvas) (render.Renderer, error) {
	style := render.DefaultStyle()
	style.LineWidth = canvas.LineWidth
	style.Thinning = canvas.Thinning

	var err error
	if canvas.Color != "" {
		if style.Color, err = render.ParseColor(canvas.Color); err != nil {
			return nil, err
		}
	}
	if canvas.Background != "" {
		if style.Background, err = render.ParseColor(canvas.Background); err != nil {
			return nil, err
		}
	}

	switch canvas.Format {
	case config.FormatPNG:
		return render.PNG{Width: canvas.Width, Height: canvas.Height, Margin: canvas.Margin, Style: style}, nil
	case config.FormatSVG:
		return render.SVG{Width: canvas.Width, Height: canvas.Height, Margin: canvas.Margin, Style: style}, nil
	case config.FormatText:
		return render.Text{}, nil
	}
	return nil, errors.Errorf("unknown format %q", canvas.Format)
}

func (a *App) writeOutput(path string, renderer render.Renderer, segments []turtle.Segment) error {
	if path == "-" {
		return renderer.Render(a.stdout, segments)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := renderer.Render(f, segments); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing output")
}
