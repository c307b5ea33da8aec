package framework

import "fmt"

// RunVariants runs the same test body once per variant, in the order given, each as its own
// subtest named by label. A failing variant does not stop the ones after it. If two variants
// produce the same label, later ones get a "#2", "#3"... suffix so that every result can be
// told apart in the report.
func RunVariants[V any](c *Context, variants []V, label func(V) string, action func(*Context, V)) {
	seen := make(map[string]int, len(variants))
	for _, v := range variants {
		name := label(v)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		variant := v
		c.Run(name, func(c1 *Context) {
			action(c1, variant)
		})
	}
}
