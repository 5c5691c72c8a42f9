package health

import (
	"context"
	"testing"
)

func BenchmarkAggregator_Run(b *testing.B) {
	agg := New()
	for _, name := range []string{"database", "cache", "queue", "downstream"} {
		if err := agg.Register(greenProbe(name)); err != nil {
			b.Fatalf("Register(%q) error = %v", name, err)
		}
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := agg.Run(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	report := Report{
		Status: StatusRed,
		Details: map[string]ProbeResult{
			"database": Green("database"),
			"cache":    Red("cache", "connection refused"),
			"downstream": Green("downstream").WithChildren(map[string]ProbeResult{
				"users":   Green("users"),
				"billing": Red("billing", "upstream 503"),
			}),
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Render(report, testHref); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRollup(b *testing.B) {
	results := map[string]ProbeResult{
		"a": Green("a"),
		"b": Green("b").WithChildren(map[string]ProbeResult{
			"c": Green("c"),
			"d": Red("d", "down"),
		}),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Rollup(results)
	}
}
