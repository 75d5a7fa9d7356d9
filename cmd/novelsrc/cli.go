package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/bloom"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/fwojciec/novelsrc/readability"
	"github.com/fwojciec/novelsrc/scrape"
	"github.com/fwojciec/novelsrc/trafilatura"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sources  novelsrc.SourceService
	Engine   novelsrc.QueryEngine
	Detector novelsrc.FrameworkDetector

	// Fetchers returns the fetcher for a source. browser selects the
	// headless browser used for sites behind a Cloudflare challenge.
	Fetchers func(browser bool) (novelsrc.Fetcher, error)

	RateLimiter novelsrc.DomainLimiter
	RetryDelays []time.Duration
	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Engine      string        `default:"legacy" enum:"legacy,dom" help:"Selector engine (legacy, dom)"`
	Verbose     bool          `short:"v" help:"Log requests and detection results"`
	Timeout     time.Duration `default:"30s" help:"Timeout per request"`
	LogFile     string        `name:"log-file" type:"path" help:"Write logs to a rotating file instead of stderr"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent chapter fetch limit"`

	Detect     DetectCmd     `cmd:"" help:"Detect the site framework of a page"`
	Probe      ProbeCmd      `cmd:"" help:"Check whether a site needs the browser fetcher"`
	Frameworks FrameworksCmd `cmd:"" help:"List supported site frameworks"`
	Suggest    SuggestCmd    `cmd:"" help:"Suggest selectors for a framework and wizard step"`
	Template   TemplateCmd   `cmd:"" help:"Generate a source configuration from a framework preset"`
	Validate   ValidateCmd   `cmd:"" help:"Validate a source configuration file"`
	Popular    PopularCmd    `cmd:"" help:"List popular novels of a source"`
	Latest     LatestCmd     `cmd:"" help:"List latest updated novels of a source"`
	Search     SearchCmd     `cmd:"" help:"Search novels of a source"`
	Novel      NovelCmd      `cmd:"" help:"Show novel details"`
	Chapters   ChaptersCmd   `cmd:"" help:"List chapters of a novel"`
	Chapter    ChapterCmd    `cmd:"" help:"Print the content of a chapter"`
	Download   DownloadCmd   `cmd:"" help:"Download chapters of a novel as markdown files"`
	Updates    UpdatesCmd    `cmd:"" help:"Show recent updates from a source's feed"`
	Sitemap    SitemapCmd    `cmd:"" help:"List page URLs from a source's sitemaps"`
	Source     SourceCmd     `cmd:"" help:"Manage stored source configurations"`
	Script     ScriptCmd     `cmd:"" help:"Call a function of a JavaScript plugin"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	Target string `arg:"" help:"Page URL or local HTML file"`
	Scores bool   `help:"Show keyword hits per framework"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL       string `arg:"" help:"Page URL"`
	Extractor string `default:"trafilatura" enum:"trafilatura,readability" help:"Extractor used to compare plain and rendered content (trafilatura, readability)"`
}

// FrameworksCmd is the "frameworks" subcommand.
type FrameworksCmd struct{}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Framework string `arg:"" help:"Site framework"`
	Step      string `arg:"" help:"Wizard step (trending, search-result, novel-card, novel-detail, chapter-list, chapter-content)"`
	HTML      string `name:"html" type:"existingfile" help:"Sample page to evaluate suggestions against"`
}

// TemplateCmd is the "template" subcommand.
type TemplateCmd struct {
	Framework string `arg:"" help:"Site framework"`
	Name      string `arg:"" help:"Source name"`
	BaseURL   string `arg:"" name:"base-url" help:"Site base URL"`
	Output    string `short:"o" type:"path" help:"Write to file (.json or .yaml) instead of stdout"`
	Format    string `default:"json" enum:"json,yaml" help:"Output format for stdout (json, yaml)"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Configuration file (.json or .yaml)"`
}

// PopularCmd is the "popular" subcommand.
type PopularCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	Page   int    `short:"p" default:"1" help:"Page number"`
	Pages  int    `help:"Walk up to N pages following next links"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// LatestCmd is the "latest" subcommand.
type LatestCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	Page   int    `short:"p" default:"1" help:"Page number"`
	Pages  int    `help:"Walk up to N pages following next links"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	Query  string `arg:"" help:"Search query"`
	Page   int    `short:"p" default:"1" help:"Page number"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// NovelCmd is the "novel" subcommand.
type NovelCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	URL    string `arg:"" help:"Novel page URL"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	URL    string `arg:"" help:"Novel page URL"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// ChapterCmd is the "chapter" subcommand.
type ChapterCmd struct {
	Source    string `arg:"" help:"Configuration file or stored source name"`
	URL       string `arg:"" help:"Chapter page URL"`
	Markdown  bool   `short:"m" help:"Print markdown converted from the chapter HTML"`
	Extractor string `default:"none" enum:"none,trafilatura,readability" help:"Fallback extractor when content selectors miss (none, trafilatura, readability)"`
	JSON      bool   `name:"json" help:"Print JSON"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Source    string `arg:"" help:"Configuration file or stored source name"`
	URL       string `arg:"" help:"Novel page URL"`
	Out       string `short:"o" default:"." type:"path" help:"Parent directory for the novel"`
	Name      string `help:"Directory name (default: derived from the novel URL)"`
	From      int    `default:"1" help:"First chapter position"`
	To        int    `help:"Last chapter position (default: all)"`
	Extractor string `default:"none" enum:"none,trafilatura,readability" help:"Fallback extractor when content selectors miss (none, trafilatura, readability)"`
}

// UpdatesCmd is the "updates" subcommand.
type UpdatesCmd struct {
	Source string `arg:"" help:"Configuration file or stored source name"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of updates to show"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	Source  string   `arg:"" help:"Configuration file or stored source name"`
	Include []string `short:"i" help:"Only URLs matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Skip URLs matching regex (repeatable)"`
}

// SourceCmd groups the source management subcommands.
type SourceCmd struct {
	Add    SourceAddCmd    `cmd:"" help:"Store a source configuration"`
	List   SourceListCmd   `cmd:"" help:"List stored sources"`
	Show   SourceShowCmd   `cmd:"" help:"Print a stored source configuration"`
	Delete SourceDeleteCmd `cmd:"" help:"Delete a stored source"`
}

// SourceAddCmd is the "source add" subcommand.
type SourceAddCmd struct {
	File  string `arg:"" type:"existingfile" help:"Configuration file (.json or .yaml)"`
	Force bool   `short:"f" help:"Replace an existing source with the same name"`
}

// SourceListCmd is the "source list" subcommand.
type SourceListCmd struct {
	Type     string `help:"Only sources of this framework"`
	Language string `help:"Only sources in this language"`
}

// SourceShowCmd is the "source show" subcommand.
type SourceShowCmd struct {
	Name   string `arg:"" help:"Source name"`
	Format string `default:"json" enum:"json,yaml" help:"Output format (json, yaml)"`
}

// SourceDeleteCmd is the "source delete" subcommand.
type SourceDeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}

// ScriptCmd is the "script" subcommand.
type ScriptCmd struct {
	File     string   `arg:"" type:"existingfile" help:"JavaScript plugin file"`
	Function string   `arg:"" help:"Global function to call"`
	Args     []string `arg:"" optional:"" help:"String arguments passed to the function"`
}

// loadSource resolves a source reference: an existing configuration file, or
// the name of a stored source.
func (d *Dependencies) loadSource(ref string) (*novelsrc.SourceConfig, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return fs.LoadConfig(ref)
	}
	if d.Sources == nil {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "source %q not found", ref)
	}
	source, err := d.Sources.FindSourceByName(d.Ctx, ref)
	if err != nil {
		return nil, err
	}
	return source.Config, nil
}

// scraper returns a scraper for cfg. The caller closes the fetcher.
func (d *Dependencies) scraper(cfg *novelsrc.SourceConfig, extractor string) (*scrape.Scraper, novelsrc.Fetcher, error) {
	fetcher, err := d.Fetchers(cfg.UseCloudflareBypass)
	if err != nil {
		return nil, nil, err
	}
	s := &scrape.Scraper{
		Fetcher:     fetcher,
		Engine:      d.Engine,
		RateLimiter: d.RateLimiter,
		Concurrency: d.Concurrency,
		RetryDelays: d.RetryDelays,
		Extractor:   newExtractor(extractor),
		NewVisited: func() novelsrc.VisitedSet {
			return bloom.NewFilter(scrape.WalkExpectedPages, scrape.WalkFalsePositiveRate)
		},
	}
	if d.Logger != nil {
		logger := d.Logger
		s.Logger = func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}
	}
	return s, fetcher, nil
}

func newExtractor(name string) novelsrc.ContentExtractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	}
	return nil
}

// fail prints err to stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
	return err
}
