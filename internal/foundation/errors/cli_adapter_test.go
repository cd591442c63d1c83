package errors

import (
	"bytes"
	stdErrors "errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestCLIAdapter(verbose bool) (*CLIErrorAdapter, *bytes.Buffer, *int) {
	var out bytes.Buffer
	code := -1
	a := NewCLIErrorAdapter(verbose, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	a.out = &out
	a.exit = func(c int) { code = c }
	return a, &out, &code
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a, _, _ := newTestCLIAdapter(false)

	cases := map[string]struct {
		err  error
		want int
	}{
		"nil":          {nil, 0},
		"validation":   {ValidationError("bad").Build(), 2},
		"not found":    {NotFoundError("gone").Build(), 3},
		"config":       {ConfigError("bad config").Build(), 7},
		"locale":       {LocaleError("bad locale").Build(), 7},
		"content":      {ContentError("bad doc").Build(), 11},
		"server":       {ServerError("no listen").Build(), 12},
		"internal":     {InternalError("bug").Build(), 10},
		"unclassified": {stdErrors.New("x"), 1},
	}
	for name, tc := range cases {
		if got := a.ExitCodeFor(tc.err); got != tc.want {
			t.Errorf("%s: ExitCodeFor() = %d, want %d", name, got, tc.want)
		}
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet, _, _ := newTestCLIAdapter(false)
	verbose, _, _ := newTestCLIAdapter(true)

	err := ConfigError("default locale missing").WithContext("field", "site.default_locale").Build()

	if got := quiet.FormatError(err); !strings.Contains(got, "default locale missing") || !strings.Contains(got, "configuration") {
		t.Errorf("unexpected quiet message: %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("verbose mode should print the full error, got %q", got)
	}
	if got := quiet.FormatError(InternalError("nil map").Build()); !strings.Contains(got, "use -v") {
		t.Errorf("internal errors should be hidden in quiet mode, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	a, out, code := newTestCLIAdapter(false)

	a.HandleError(ValidationError("unknown format").Build())

	if *code != 2 {
		t.Errorf("expected exit code 2, got %d", *code)
	}
	if !strings.Contains(out.String(), "unknown format") {
		t.Errorf("expected message on output, got %q", out.String())
	}

	*code = -1
	a.HandleError(nil)
	if *code != -1 {
		t.Error("nil error must not exit")
	}
}
