package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/wbrown/ansimate"
	"github.com/wbrown/ansimate/document"
	"github.com/wbrown/ansimate/player"
	"github.com/wbrown/ansimate/source"
)

var videoExts = map[string]bool{
	".mp4": true, ".mkv": true, ".webm": true, ".avi": true, ".mov": true,
}

func main() {
	mode := flag.String("mode", "ascii",
		"Render mode: ascii, blocks, braille, matrix")
	width := flag.Int("width", 0,
		"Explicit output width in cells (0 = auto)")
	height := flag.Int("height", 0,
		"Explicit output height in cells (0 = auto)")
	maxWidth := flag.Int("max-width", 0,
		"Width cap when no explicit width is set (0 = terminal width)")
	maxHeight := flag.Int("max-height", 0,
		"Height cap when no explicit height is set (0 = terminal height)")
	contrast := flag.Float64("contrast", 2.5,
		"Contrast power applied to shape samples (>= 1)")
	gamma := flag.Float64("gamma", 1.0,
		"Gamma correction applied to brightness (> 0)")
	charAspect := flag.Float64("char-aspect", 0.5,
		"Terminal cell width/height ratio")
	invert := flag.Bool("invert", false,
		"Flip brightness polarity for light terminals")
	noColor := flag.Bool("no-color", false,
		"Disable 24-bit color output")
	colorCount := flag.Int("colors", 0,
		"Cap the palette to N colors (0 = unlimited)")
	edge := flag.Bool("edges", false,
		"Enable Canny edge boosting")
	charset := flag.String("charset", "",
		"Charset preset (extended, simple, block, classic) or a custom string")
	speed := flag.Float64("speed", 1.0,
		"Playback speed multiplier")
	loops := flag.Int("loop", 0,
		"Animation loop count (0 = forever)")
	colorThreshold := flag.Float64("color-threshold", 15,
		"Temporal stability color snap distance (0 = off)")
	noAltScreen := flag.Bool("no-alt-screen", false,
		"Play in the main screen buffer")
	matrixColor := flag.String("matrix-color", "green",
		"Matrix rain palette: green, red, amber, blue, cyan, purple, or #RRGGBB")
	saveTo := flag.String("save", "",
		"Save rendered frames to a document instead of displaying "+
			"(.cid = standard form, .cidl = streaming form)")
	verbose := flag.Bool("verbose", false,
		"Log diagnostics to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: ansimate [flags] <image|gif|video|document>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if *verbose {
		ansimate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	renderMode, ok := parseMode(*mode)
	if !ok {
		fail("invalid mode %q (ascii, blocks, braille, matrix)", *mode)
	}

	opts := ansimate.ForAnimation(*loops)
	opts.Width = *width
	opts.Height = *height
	opts.MaxWidth, opts.MaxHeight = resolveCaps(*maxWidth, *maxHeight, renderMode)
	opts.Contrast = *contrast
	opts.Gamma = *gamma
	opts.CharAspect = *charAspect
	opts.Invert = *invert
	// The -no-color flag and the environment both gate color:
	// NO_COLOR or a colorless TERM wins over the default.
	opts.UseColor = !*noColor && ansimate.DetectColorMode() != ansimate.ColorOff
	opts.ColorCount = *colorCount
	opts.EdgeDetect = *edge
	opts.Speed = *speed
	opts.AltScreen = !*noAltScreen
	opts.MatrixPalette = *matrixColor
	opts.StabilityEnabled = *colorThreshold > 0
	opts.StabilityThreshold = *colorThreshold
	applyCharset(&opts, *charset)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, input, renderMode, opts, *saveTo); err != nil {
		fail("%v", err)
	}
}

// fail prints a single-line diagnostic and exits non-zero. Expected
// errors never dump stack traces.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ansimate: "+format+"\n", args...)
	os.Exit(1)
}

func parseMode(s string) (ansimate.RenderMode, bool) {
	switch strings.ToLower(s) {
	case "ascii":
		return ansimate.ModeASCII, true
	case "blocks":
		return ansimate.ModeBlocks, true
	case "braille":
		return ansimate.ModeBraille, true
	case "matrix":
		return ansimate.ModeMatrix, true
	}
	return ansimate.ModeASCII, false
}

// resolveCaps defaults the dimension caps to the terminal size, less
// one row so the shell prompt survives.
func resolveCaps(maxW, maxH int, mode ansimate.RenderMode) (int, int) {
	termW, termH := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		termW, termH = w, h
	}
	if maxW <= 0 {
		maxW = termW
	}
	if maxH <= 0 {
		maxH = termH - 1
		if maxH < 1 {
			maxH = 1
		}
	}
	return maxW, maxH
}

func applyCharset(opts *ansimate.RenderOptions, s string) {
	switch strings.ToLower(s) {
	case "", "extended":
		opts.Preset = ansimate.CharsetExtended
	case "simple":
		opts.Preset = ansimate.CharsetSimple
	case "block":
		opts.Preset = ansimate.CharsetBlock
	case "classic":
		opts.Preset = ansimate.CharsetClassic
	default:
		opts.CustomCharset = s
	}
}

func run(ctx context.Context, input string, mode ansimate.RenderMode, opts ansimate.RenderOptions, saveTo string) error {
	ext := strings.ToLower(filepath.Ext(input))

	// Documents replay stored frames; no rendering involved.
	if ext == ".cid" || ext == ".cidl" {
		doc, err := document.LoadFile(input)
		if err != nil {
			return err
		}
		p, err := player.New(os.Stdout, modeFromDoc(doc), opts)
		if err != nil {
			return err
		}
		return p.PlayDocument(ctx, doc)
	}

	src, err := openSource(ctx, input, ext, mode, &opts)
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	renderer, err := ansimate.NewRenderer(mode, opts)
	if err != nil {
		return err
	}

	if saveTo != "" {
		return saveDocument(ctx, src, renderer, input, saveTo)
	}

	frames, streaming := collectFrames(src)
	switch {
	case streaming != nil:
		p, perr := player.New(os.Stdout, mode, opts)
		if perr != nil {
			return perr
		}
		return p.Play(ctx, &renderSeq{src: streaming, renderer: renderer})
	case len(frames) == 1 && mode == ansimate.ModeMatrix:
		// A still under matrix mode becomes a synthetic animation:
		// every tick re-renders the same image with advanced rain.
		p, perr := player.New(os.Stdout, mode, opts)
		if perr != nil {
			return perr
		}
		return p.Play(ctx, &matrixSeq{img: frames[0].img, renderer: renderer})
	case len(frames) == 1:
		// A still image prints once; no terminal takeover.
		frame := renderer.RenderImage(frames[0].img)
		_, werr := io.WriteString(os.Stdout, frame.ANSI())
		return werr
	default:
		p, perr := player.New(os.Stdout, mode, opts)
		if perr != nil {
			return perr
		}
		rendered := make([]*ansimate.Frame, 0, len(frames))
		for _, df := range frames {
			f := renderer.RenderImage(df.img)
			f.DelayMs = df.delayMs
			rendered = append(rendered, f)
		}
		return p.PlayFrames(ctx, rendered)
	}
}

func modeFromDoc(doc *document.Document) ansimate.RenderMode {
	m, _ := ansimate.ParseRenderMode(doc.RenderMode)
	return m
}

type decodedFrame struct {
	img     image.Image
	delayMs int
}

// openSource builds the frame source for the input. Replaying a still
// as a matrix-mode animation happens in run, through matrixSeq.
func openSource(ctx context.Context, input, ext string, mode ansimate.RenderMode, opts *ansimate.RenderOptions) (source.Source, error) {
	switch {
	case ext == ".gif":
		return source.OpenGIF(input)
	case videoExts[ext]:
		px, py := ansimate.PixelsPerCell(mode)
		return source.OpenFFmpeg(ctx, input,
			opts.MaxWidth*px, opts.MaxHeight*py, 15)
	default:
		return source.OpenImage(input)
	}
}

// collectFrames drains finite sources into memory so looped playback
// can replay them. Unbounded sources (video pipes) stay streaming and
// return themselves instead.
func collectFrames(src source.Source) ([]decodedFrame, source.Source) {
	if _, ok := src.(*source.FFmpeg); ok {
		return nil, src
	}
	var frames []decodedFrame
	for {
		img, delayMs, err := src.Next()
		if err != nil {
			break
		}
		frames = append(frames, decodedFrame{img: img, delayMs: delayMs})
	}
	return frames, nil
}

// matrixSeq replays one still image forever, advancing the rain state
// on every tick. Playback ends via a quit key or cancellation.
type matrixSeq struct {
	img      image.Image
	renderer *ansimate.Renderer
}

func (ms *matrixSeq) Next() (*ansimate.Frame, error) {
	return ms.renderer.RenderImage(ms.img), nil
}

// renderSeq renders frames on demand from a streaming source.
type renderSeq struct {
	src      source.Source
	renderer *ansimate.Renderer
}

func (rs *renderSeq) Next() (*ansimate.Frame, error) {
	img, delayMs, err := rs.src.Next()
	if err != nil {
		return nil, err
	}
	f := rs.renderer.RenderImage(img)
	f.DelayMs = delayMs
	return f, nil
}

// saveDocument renders every source frame into a document file. The
// streaming form writes records as frames are produced, so an
// interrupt leaves a valid file that loads as incomplete.
func saveDocument(ctx context.Context, src source.Source, renderer *ansimate.Renderer, input, saveTo string) error {
	settings := document.Settings{
		UseColor:   renderer.Opts.UseColor,
		CharAspect: renderer.Opts.CharAspect,
		Speed:      renderer.Opts.Speed,
		Loops:      renderer.Opts.Loops,
	}

	out, err := os.Create(saveTo)
	if err != nil {
		return err
	}
	defer out.Close()

	if strings.HasSuffix(saveTo, ".cidl") {
		sw, err := document.NewStreamWriter(out, renderer.Mode.String(), settings, input)
		if err != nil {
			return err
		}
		defer sw.Close()
		for {
			img, delayMs, err := src.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return sw.Close()
			}
			f := renderer.RenderImage(img)
			if err := sw.WriteFrame(f.Content(), delayMs, f.Width, f.Height); err != nil {
				return err
			}
		}
		return sw.Finish()
	}

	doc := document.New(renderer.Mode.String(), settings, input)
	for {
		img, delayMs, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			break
		}
		f := renderer.RenderImage(img)
		if err := doc.AppendFrame(f.Content(), delayMs, f.Width, f.Height); err != nil {
			return err
		}
	}
	return doc.Save(out)
}
