// Package otto runs per-site scripts in an otto JavaScript sandbox. Scripts
// see the element finder through cheerio-style bridge functions, so a script
// selector behaves exactly like the same selector in a source configuration.
package otto

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/finder"
	"github.com/robertkrimen/otto"
)

//go:embed prelude.js
var prelude string

// errHalt is panicked inside the VM to stop a script whose context ended.
var errHalt = errors.New("script halted")

// Filter input kinds exposed to scripts as FilterTypes.
var filterTypes = map[string]string{
	"TextInput":               "Text",
	"Picker":                  "Picker",
	"CheckboxGroup":           "Checkbox",
	"Switch":                  "Switch",
	"ExcludableCheckboxGroup": "XCheckbox",
}

var novelStatuses = map[string]novelsrc.NovelStatus{
	"Unknown":   novelsrc.StatusUnknown,
	"Ongoing":   novelsrc.StatusOngoing,
	"Completed": novelsrc.StatusCompleted,
	"OnHiatus":  novelsrc.StatusHiatus,
}

// Host is a JavaScript VM with the scraping bridges installed. A Host is not
// safe for concurrent use; create one per worker.
type Host struct {
	vm      *otto.Otto
	fetcher novelsrc.Fetcher
	logger  *slog.Logger
	timeout time.Duration

	// ctx is the context of the running Load or Call, used by fetches.
	ctx context.Context
}

// Option configures a Host.
type Option func(*Host)

// WithFetcher backs fetchText and fetchApi. Without a fetcher they throw.
func WithFetcher(f novelsrc.Fetcher) Option {
	return func(h *Host) {
		h.fetcher = f
	}
}

// WithLogger receives console output of scripts.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithTimeout bounds each Load and Call.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		h.timeout = d
	}
}

// NewHost creates a VM and installs the bridge functions, the cheerio-style
// load() wrapper, URL and URLSearchParams, formatDate, the fetch helpers, the
// status and filter enumerations, and require().
func NewHost(opts ...Option) (*Host, error) {
	h := &Host{
		vm:     otto.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}

	statuses, err := json.Marshal(novelStatuses)
	if err != nil {
		return nil, err
	}
	filters, err := json.Marshal(filterTypes)
	if err != nil {
		return nil, err
	}

	natives := map[string]any{
		"cheerioText":     h.cheerioText,
		"cheerioHtml":     h.cheerioHTML,
		"cheerioAttr":     h.cheerioAttr,
		"cheerioEach":     h.cheerioEach,
		"cheerioLength":   h.cheerioLength,
		"cheerioHasClass": h.cheerioHasClass,
		"formatDate":      h.formatDate,
		"__parseURL":      h.parseURL,
		"__fetch":         h.fetch,
		"__log":           h.log,
		"__novelStatus":   string(statuses),
		"__filterTypes":   string(filters),
	}
	for name, v := range natives {
		if err := h.vm.Set(name, v); err != nil {
			return nil, fmt.Errorf("install %s: %w", name, err)
		}
	}

	if _, err := h.vm.Run(prelude); err != nil {
		return nil, fmt.Errorf("install prelude: %w", err)
	}
	return h, nil
}

// Load runs a guest script, typically one that defines functions for Call.
// Returns EINVALID if the script does not parse.
func (h *Host) Load(ctx context.Context, src string) error {
	script, err := h.vm.Compile("", src)
	if err != nil {
		return novelsrc.Errorf(novelsrc.EINVALID, "invalid script: %v", err)
	}
	if _, err := h.run(ctx, func() (otto.Value, error) {
		return h.vm.Run(script)
	}); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// Call invokes the global function name with string arguments and returns
// its result encoded as JSON. An undefined result encodes as null.
// Returns ENOTFOUND if no such function is defined.
func (h *Host) Call(ctx context.Context, name string, args ...string) (string, error) {
	fn, err := h.vm.Get(name)
	if err != nil {
		return "", err
	}
	if !fn.IsFunction() {
		return "", novelsrc.Errorf(novelsrc.ENOTFOUND, "script function %q not defined", name)
	}

	argv := make([]any, len(args))
	for i, a := range args {
		argv[i] = a
	}

	v, err := h.run(ctx, func() (otto.Value, error) {
		return fn.Call(otto.NullValue(), argv...)
	})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}
	if v.IsUndefined() {
		return "null", nil
	}

	out, err := h.vm.Call("JSON.stringify", nil, v)
	if err != nil {
		return "", fmt.Errorf("encode result of %s: %w", name, err)
	}
	if out.IsUndefined() {
		return "null", nil
	}
	return out.String(), nil
}

// run executes fn with ctx installed for fetches. When ctx ends first the VM
// is interrupted and the context error is returned. A halted VM may hold
// partial state; callers should discard the Host.
func (h *Host) run(ctx context.Context, fn func() (otto.Value, error)) (v otto.Value, err error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	interrupt := make(chan func(), 1)
	h.vm.Interrupt = interrupt
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			interrupt <- func() {
				panic(errHalt)
			}
		case <-done:
		}
	}()

	defer func() {
		if caught := recover(); caught != nil {
			if caught == errHalt {
				err = fmt.Errorf("%w: %w", errHalt, ctx.Err())
				return
			}
			panic(caught)
		}
	}()

	prev := h.ctx
	h.ctx = ctx
	defer func() { h.ctx = prev }()

	return fn()
}

func (h *Host) cheerioText(call otto.FunctionCall) otto.Value {
	return h.value(finder.BridgeText(call.Argument(0).String(), selectorArg(call, 1)))
}

func (h *Host) cheerioHTML(call otto.FunctionCall) otto.Value {
	return h.value(finder.BridgeHTML(call.Argument(0).String(), selectorArg(call, 1)))
}

func (h *Host) cheerioAttr(call otto.FunctionCall) otto.Value {
	v, ok := finder.BridgeAttr(call.Argument(0).String(), selectorArg(call, 1), call.Argument(2).String())
	if !ok {
		return otto.NullValue()
	}
	return h.value(v)
}

func (h *Host) cheerioEach(call otto.FunctionCall) otto.Value {
	return h.value(finder.BridgeEach(call.Argument(0).String(), selectorArg(call, 1)))
}

func (h *Host) cheerioLength(call otto.FunctionCall) otto.Value {
	return h.value(finder.BridgeLength(call.Argument(0).String(), selectorArg(call, 1)))
}

func (h *Host) cheerioHasClass(call otto.FunctionCall) otto.Value {
	return h.value(finder.BridgeHasClass(call.Argument(0).String(), selectorArg(call, 1), call.Argument(2).String()))
}

// formatDate(value, pattern) formats a timestamp in milliseconds or a date
// string in UTC. The pattern understands YYYY, MM, DD, HH, mm and ss and
// defaults to YYYY-MM-DD. Unparsable input yields null.
func (h *Host) formatDate(call otto.FunctionCall) otto.Value {
	arg := call.Argument(0)

	var t time.Time
	switch {
	case arg.IsNumber():
		ms, err := arg.ToInteger()
		if err != nil {
			return otto.NullValue()
		}
		t = time.UnixMilli(ms)
	case arg.IsString():
		parsed, err := dateparse.ParseIn(strings.TrimSpace(arg.String()), time.UTC)
		if err != nil {
			return otto.NullValue()
		}
		t = parsed
	default:
		return otto.NullValue()
	}

	pattern := "YYYY-MM-DD"
	if p := call.Argument(1); p.IsString() && p.String() != "" {
		pattern = p.String()
	}
	return h.value(t.UTC().Format(dateLayout.Replace(pattern)))
}

var dateLayout = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// parseURL returns the parts of href resolved against base as JSON, or null.
func (h *Host) parseURL(call otto.FunctionCall) otto.Value {
	u, err := url.Parse(call.Argument(0).String())
	if err != nil {
		return otto.NullValue()
	}
	if base := call.Argument(1).String(); base != "" {
		b, err := url.Parse(base)
		if err != nil || !b.IsAbs() {
			return otto.NullValue()
		}
		u = b.ResolveReference(u)
	}
	if !u.IsAbs() || u.Host == "" {
		return otto.NullValue()
	}

	parts := map[string]string{
		"href":     u.String(),
		"origin":   u.Scheme + "://" + u.Host,
		"protocol": u.Scheme + ":",
		"host":     u.Host,
		"hostname": u.Hostname(),
		"port":     u.Port(),
		"pathname": u.EscapedPath(),
		"search":   "",
		"hash":     "",
	}
	if parts["pathname"] == "" {
		parts["pathname"] = "/"
	}
	if u.RawQuery != "" {
		parts["search"] = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		parts["hash"] = "#" + u.EscapedFragment()
	}

	data, err := json.Marshal(parts)
	if err != nil {
		return otto.NullValue()
	}
	return h.value(string(data))
}

// fetch(url, method, headersJSON, body) performs a request through the
// fetcher. A POST body is sent as a form.
func (h *Host) fetch(call otto.FunctionCall) otto.Value {
	if h.fetcher == nil {
		panic(h.vm.MakeCustomError("FetchError", "fetch is not available"))
	}

	req := novelsrc.Request{
		Method: strings.ToUpper(call.Argument(1).String()),
		URL:    call.Argument(0).String(),
	}
	if headers := call.Argument(2).String(); headers != "" && headers != "{}" {
		if err := json.Unmarshal([]byte(headers), &req.Headers); err != nil {
			panic(h.vm.MakeTypeError("headers must be an object of strings"))
		}
	}
	if req.Method == novelsrc.MethodPost {
		form, err := url.ParseQuery(call.Argument(3).String())
		if err != nil {
			panic(h.vm.MakeTypeError("invalid form body: " + err.Error()))
		}
		req.Form = form
	}

	body, err := h.fetcher.Fetch(h.ctx, req)
	if err != nil {
		panic(h.vm.MakeCustomError("FetchError", err.Error()))
	}
	return h.value(body)
}

func (h *Host) log(call otto.FunctionCall) otto.Value {
	msg := call.Argument(1).String()
	switch call.Argument(0).String() {
	case "warn":
		h.logger.Warn(msg, "source", "script")
	case "error":
		h.logger.Error(msg, "source", "script")
	default:
		h.logger.Info(msg, "source", "script")
	}
	return otto.UndefinedValue()
}

func (h *Host) value(v any) otto.Value {
	out, err := h.vm.ToValue(v)
	if err != nil {
		panic(h.vm.MakeTypeError(err.Error()))
	}
	return out
}

// selectorArg treats undefined and null selectors as the whole document.
func selectorArg(call otto.FunctionCall, i int) string {
	v := call.Argument(i)
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}
