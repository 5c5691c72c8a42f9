package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	if got := StatusGreen.String(); got != "green" {
		t.Errorf("StatusGreen.String() = %q, want green", got)
	}
	if got := StatusRed.String(); got != "red" {
		t.Errorf("StatusRed.String() = %q, want red", got)
	}
	if got := Status(42).String(); got != "red" {
		t.Errorf("unknown status String() = %q, want red", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"green", StatusGreen, false},
		{"red", StatusRed, false},
		{"GREEN", 0, true},
		{"yellow", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownStatus) {
				t.Errorf("ParseStatus(%q) error = %v, want ErrUnknownStatus", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGreenRed(t *testing.T) {
	g := Green("database")
	if g.Name != "database" || g.Status != StatusGreen || g.Detail != "" {
		t.Errorf("Green() = %+v", g)
	}

	r := Red("cache", "connection refused")
	if r.Name != "cache" || r.Status != StatusRed || r.Detail != "connection refused" {
		t.Errorf("Red() = %+v", r)
	}
}

func TestRollup_Nested(t *testing.T) {
	deepRed := Green("top").WithChildren(map[string]ProbeResult{
		"middle": Green("middle").WithChildren(map[string]ProbeResult{
			"leaf": Red("leaf", "down"),
		}),
	})
	if deepRed.Rollup() != StatusRed {
		t.Error("a red descendant at any depth should roll up red")
	}
	if deepRed.Status != StatusRed {
		t.Error("WithChildren should recompute the parent status from children")
	}

	allGreen := Green("top").WithChildren(map[string]ProbeResult{
		"a": Green("a"),
		"b": Green("b"),
	})
	if allGreen.Rollup() != StatusGreen {
		t.Error("all-green children should roll up green")
	}
}

func TestProbeFunc(t *testing.T) {
	probe := NewProbeFunc("ping", func(ctx context.Context) (ProbeResult, error) {
		return Green("ping"), nil
	})

	if probe.Name() != "ping" {
		t.Errorf("Name() = %q, want ping", probe.Name())
	}

	res, err := probe.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Status != StatusGreen {
		t.Errorf("Check() status = %v, want green", res.Status)
	}
}

func TestComposite(t *testing.T) {
	comp := NewComposite("downstream",
		NewProbeFunc("users", func(ctx context.Context) (ProbeResult, error) {
			return Green("users"), nil
		}),
		NewProbeFunc("billing", func(ctx context.Context) (ProbeResult, error) {
			return Red("billing", "upstream 503"), nil
		}),
	)

	res, err := comp.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if res.Name != "downstream" {
		t.Errorf("composite name = %q", res.Name)
	}
	if len(res.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(res.Children))
	}
	if res.Status != StatusRed {
		t.Error("a red child should make the composite red")
	}
	if res.Children["users"].Status != StatusGreen {
		t.Error("users child should be green")
	}
	if res.Children["billing"].Detail != "upstream 503" {
		t.Errorf("billing detail = %q", res.Children["billing"].Detail)
	}
}

func TestComposite_ChildError(t *testing.T) {
	comp := NewComposite("downstream",
		NewProbeFunc("flaky", func(ctx context.Context) (ProbeResult, error) {
			return ProbeResult{}, errors.New("dial tcp: connection refused")
		}),
	)

	res, err := comp.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	child := res.Children["flaky"]
	if child.Status != StatusRed {
		t.Error("a failing child should become a red leaf")
	}
	if child.Detail == "" {
		t.Error("red leaf from a failure should carry a detail")
	}
}

func TestComposite_DuplicateNames(t *testing.T) {
	comp := NewComposite("downstream",
		NewProbeFunc("users", func(ctx context.Context) (ProbeResult, error) {
			return Green("users"), nil
		}),
		NewProbeFunc("users", func(ctx context.Context) (ProbeResult, error) {
			return Green("users"), nil
		}),
	)

	_, err := comp.Check(context.Background())
	if !errors.Is(err, ErrDuplicateProbe) {
		t.Errorf("Check() error = %v, want ErrDuplicateProbe", err)
	}
}
