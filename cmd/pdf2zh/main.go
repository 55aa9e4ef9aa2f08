// Command pdf2zh wires flag-based configuration to a pdf2zh.Engine.
//
// Full PDF parsing, font acquisition and Markdown/PPTX export are external
// collaborators (see pdf2zh's package doc) and are not implemented here;
// this binary demonstrates the engine wiring end to end against a single
// synthetic glyph run built from the -in text, the way a real front-end
// would feed it one already-parsed page at a time.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/pdf2zh/pdf2zh"
	"github.com/pdf2zh/pdf2zh/translator"
	"github.com/pdf2zh/pdf2zh/utils"
)

const HelpBanner = `
┌─┐┌─┐┌─┬─┐┌─┐┬ ┬
├─┘│ │├┤ ┌┘│  ├─┤
┴  └─┘└─┴─┘└─┘┴ ┴

Layout-preserving PDF translation engine.
    Version: %s

`

// pipeName indicates that stdin/stdout is being used as the file name.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	source      = flag.String("in", pipeName, "Source text")
	destination = flag.String("out", pipeName, "Destination for the translated content stream")
	langIn      = flag.String("lang-in", "en", "Source language")
	langOut     = flag.String("lang-out", "zh", "Target language")
	service     = flag.String("service", "noop", "Translation service, as \"name\" or \"name:model\"")
	prompt      = flag.String("prompt", "", "Custom prompt forwarded to the backend")
	thread      = flag.Int("thread", runtime.NumCPU(), "Number of paragraphs to translate concurrently")
	ignoreCache = flag.Bool("ignore-cache", false, "Bypass the backend's translation cache")
	traceCursor = flag.Bool("trace", false, "Append debug cursor-tracing lines to the output")
	debug       = flag.Bool("debug", false, "Log each retried translation attempt")
	fontSize    = flag.Float64("size", 10, "Font size of the synthetic glyph run")
	pageWidth   = flag.Float64("width", 600, "Page width")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	text, err := readSource(*source)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("Failed to read the source text: %v", err), utils.ErrorMessage))
	}

	cfg := &pdf2zh.Config{
		LangIn:      *langIn,
		LangOut:     *langOut,
		Service:     *service,
		Prompt:      *prompt,
		Thread:      *thread,
		IgnoreCache: *ignoreCache,
		TraceCursor: *traceCursor,
	}
	if !*debug {
		cfg.Logger = pdf2zh.NopLogger{}
	}

	backend, err := translator.Select(*service, translator.Options{
		LangIn:      *langIn,
		LangOut:     *langOut,
		Prompt:      *prompt,
		Envs:        envMap(),
		IgnoreCache: *ignoreCache,
	})
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("Failed to select the translation service: %v", err), utils.ErrorMessage))
	}

	eng, err := pdf2zh.New(cfg, backend, demoFontMap())
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("Failed to build the engine: %v", err), utils.ErrorMessage))
	}

	// Only animate the spinner against an interactive terminal; a piped
	// or redirected stderr gets a single plain status line instead.
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PDF2ZH", utils.StatusMessage),
		utils.DecorateText("⇢ translating page (be patient, it may take a while)...", utils.DefaultMessage),
	)
	spinner := utils.NewSpinner(defaultMsg, time.Millisecond*80, isTTY)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.Stop()
		os.Exit(1)
	}()

	now := time.Now()
	if isTTY {
		spinner.Start()
	} else {
		fmt.Fprintln(os.Stderr, defaultMsg)
	}

	out, err := eng.TranslatePage(demoPage(text, *pageWidth, *fontSize), demoLabelMap())

	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ PDF2ZH", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the page has been translated successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ PDF2ZH", utils.StatusMessage),
		utils.DecorateText("translation failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	if err != nil {
		if isTTY {
			spinner.StopMsg = errorMsg
			spinner.Stop()
		} else {
			fmt.Fprintln(os.Stderr, errorMsg)
		}
		log.Fatalf(utils.DecorateText(fmt.Sprintf("\nError translating the page: %v\n", err), utils.ErrorMessage))
	}
	if isTTY {
		spinner.StopMsg = successMsg
		spinner.Stop()
	} else {
		fmt.Fprintln(os.Stderr, successMsg)
	}

	if err := writeDestination(*destination, out); err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("Failed to write the destination: %v", err), utils.ErrorMessage))
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

func readSource(src string) (string, error) {
	if src == pipeName {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(src)
	return string(b), err
}

func writeDestination(dst string, content []byte) error {
	if dst == pipeName {
		_, err := os.Stdout.Write(content)
		return err
	}
	return os.WriteFile(dst, content, 0644)
}

func envMap() map[string]string {
	envs := map[string]string{}
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				envs[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return envs
}
