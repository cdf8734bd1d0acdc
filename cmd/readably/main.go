package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"github.com/mholloway/readably"
)

// CLI declares the command-line surface. A YAML config file can fill
// in any flag left at its default.
type CLI struct {
	Input  string `arg:"" optional:"" help:"Input HTML file. Use '-' or omit for stdin."`
	Output string `short:"o" placeholder:"FILE" help:"Write output to FILE instead of stdout."`
	Format string `short:"f" default:"json" enum:"json,text,html" help:"Output format: json, text or html."`

	BaseURI       string `name:"base-uri" placeholder:"URI" help:"Resolve relative links against URI."`
	CharThreshold int    `default:"500" help:"Minimum extracted text length to accept an article."`
	MaxElements   int    `help:"Abort on documents with more elements (0 = unlimited)."`

	Check                 bool     `help:"Only check readerability. Exit 0 if readerable, 1 otherwise."`
	KeepClasses           bool     `help:"Keep class attributes in the output HTML."`
	PreserveClass         []string `name:"preserve-class" help:"Class names to keep even when stripping classes."`
	DisableStructuredData bool     `help:"Skip JSON-LD metadata extraction."`
	Compact               bool     `help:"Emit compact JSON instead of indented."`

	Config  string `type:"path" help:"YAML config file."`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("readably"),
		kong.Description("Extract the readable article from an HTML document."),
	)

	logger := setupLogger(cli.Verbose)

	if cli.Config != "" {
		cfg, err := loadConfigFile(cli.Config)
		if err != nil {
			logger.Error().Err(err).Str("path", cli.Config).Msg("cannot load config file")
			kctx.Exit(1)
		}
		cfg.apply(cli)
	}

	code, err := run(cli, logger, os.Stdout)
	if err != nil {
		logger.Error().Err(err).Msg("extraction failed")
		kctx.Exit(1)
	}
	kctx.Exit(code)
}

func setupLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func run(cli *CLI, logger zerolog.Logger, stdout io.Writer) (int, error) {
	input, err := readInput(cli.Input)
	if err != nil {
		return 1, err
	}

	opts := []readably.Option{
		readably.WithCharThreshold(cli.CharThreshold),
		readably.WithMaxElements(cli.MaxElements),
		readably.WithKeepClasses(cli.KeepClasses),
		readably.WithClassesToPreserve(cli.PreserveClass...),
		readably.WithStructuredData(!cli.DisableStructuredData),
		readably.WithLogger(logger),
	}
	if cli.BaseURI != "" {
		opts = append(opts, readably.WithBaseURI(cli.BaseURI))
	}

	if cli.Check {
		if readably.IsProbablyReaderable(input, opts...) {
			return 0, nil
		}
		return 1, nil
	}

	article, err := readably.New(opts...).ParseHTML(input)
	if err != nil {
		if errors.Is(err, readably.ErrNoContent) {
			return 1, fmt.Errorf("no readable content: %w", err)
		}
		return 1, err
	}

	rendered, err := render(article, cli.Format, cli.Compact)
	if err != nil {
		return 1, err
	}

	return 0, writeOutput(cli.Output, rendered, stdout)
}

// readInput loads the document from a file, or from stdin for "-" or
// no argument, decoding legacy charsets to UTF-8.
func readInput(path string) (string, error) {
	var src io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	decoded, err := charset.NewReader(src, "text/html")
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func render(article *readably.Article, format string, compact bool) (string, error) {
	switch format {
	case "json":
		return renderJSON(article, compact)
	case "text":
		return renderText(article), nil
	case "html":
		return renderHTML(article), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func renderJSON(article *readably.Article, compact bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(article)
	} else {
		data, err = json.MarshalIndent(article, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encode article: %w", err)
	}
	return string(data) + "\n", nil
}

func renderText(article *readably.Article) string {
	var b strings.Builder
	if article.Title != "" {
		b.WriteString("Title: " + article.Title + "\n")
	}
	if article.Byline != "" {
		b.WriteString("By: " + article.Byline + "\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(article.TextContent)
	b.WriteString("\n")
	return b.String()
}

// renderHTML wraps the extracted content in a minimal standalone
// document.
func renderHTML(article *readably.Article) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html")
	if article.Lang != "" {
		b.WriteString(` lang="` + html.EscapeString(article.Lang) + `"`)
	}
	if article.Dir != "" {
		b.WriteString(` dir="` + html.EscapeString(article.Dir) + `"`)
	}
	b.WriteString(">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(article.Title) + "</title>\n")
	b.WriteString("</head>\n<body>\n")
	if article.Title != "" {
		b.WriteString("<h1>" + html.EscapeString(article.Title) + "</h1>\n")
	}
	if article.Byline != "" {
		b.WriteString("<p><em>" + html.EscapeString(article.Byline) + "</em></p>\n")
	}
	b.WriteString(article.Content)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

func writeOutput(path, rendered string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, rendered)
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
