package render

import "testing"

var benchmarkContent = "# Reply\n\n" +
	"This is **bold** and *italic* text with some `inline code`.\n\n" +
	"```go\n" +
	"func main() {\n" +
	"    fmt.Println(\"Hello, World!\")\n" +
	"}\n" +
	"```\n\n" +
	"- Item 1\n" +
	"- Item 2\n" +
	"- Item 3\n"

func BenchmarkMarkdownNoCache(b *testing.B) {
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ClearCache()
		_, err := Markdown(benchmarkContent, opts)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarkdownWithCache(b *testing.B) {
	opts := DefaultOptions()

	// Warm the pool
	if _, err := Markdown(benchmarkContent, opts); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Markdown(benchmarkContent, opts)
		if err != nil {
			b.Fatal(err)
		}
	}
}
