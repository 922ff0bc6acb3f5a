package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNew_FromRegistry(t *testing.T) {
	err := New("E102")
	if err.Category != CategoryConfig {
		t.Errorf("category = %q", err.Category)
	}
	if err.Error() != "E102: Invalid port" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNew_UnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" || err.Code != "E999" {
		t.Errorf("unexpected %+v", err)
	}
}

func TestWrap_UnwrapAndIs(t *testing.T) {
	err := New("E100").Wrap(fs.ErrPermission)
	if !stderrors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.HasSuffix(err.Error(), fs.ErrPermission.Error()) {
		t.Errorf("Error() = %q should include cause", err.Error())
	}

	wrapped := fmt.Errorf("loading: %w", err)
	if !stderrors.Is(wrapped, New("E100")) {
		t.Error("expected code match through wrapping")
	}
	if stderrors.Is(wrapped, New("E101")) {
		t.Error("different code must not match")
	}
	if Code(wrapped) != "E100" {
		t.Errorf("Code = %q", Code(wrapped))
	}
	if Code(stderrors.New("plain")) != "" {
		t.Error("plain error has no code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E400") != nil {
		t.Error("nil in, nil out")
	}
	orig := New("E103")
	if FromError(fmt.Errorf("ctx: %w", orig), "E400") != orig {
		t.Error("existing TooltipError should be returned as is")
	}
	got := FromError(stderrors.New("boom"), "E400")
	if got.Code != "E400" || got.Wrapped == nil {
		t.Errorf("unexpected %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E103").
		WithDetailf("got %q", "center").
		WithSuggestion("Use top, bottom, left or right").
		Wrap(stderrors.New("parse failure"))

	out := Format(err)
	for _, want := range []string{
		"ERROR E103: Invalid tooltip position",
		`got "center"`,
		"cause: parse failure",
		"hint: Use top, bottom, left or right",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format missing %q:\n%s", want, out)
		}
	}

	if got := Format(stderrors.New("plain")); got != "ERROR: plain\n" {
		t.Errorf("Format(plain) = %q", got)
	}
	if Format(nil) != "" {
		t.Error("Format(nil) should be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "bad flag %s", "--x")
	if err.Error() != "bad flag --x" || err.Code != "" {
		t.Errorf("unexpected %+v", err)
	}
}

func TestCodes_SortedAndCategorized(t *testing.T) {
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	prefixes := map[Category]string{
		CategoryConfig:   "E1",
		CategoryProtocol: "E2",
		CategoryPublish:  "E3",
		CategoryCLI:      "E4",
	}
	for _, c := range codes {
		tmpl, ok := Lookup(c)
		if !ok {
			t.Fatalf("Lookup(%s) failed", c)
		}
		if !strings.HasPrefix(c, prefixes[tmpl.Category]) {
			t.Errorf("%s has category %s", c, tmpl.Category)
		}
	}
}
