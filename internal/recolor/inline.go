package recolor

import (
	"regexp"
	"strings"
)

var (
	styleRule    = regexp.MustCompile(`\.([A-Za-z_][\w-]*)\s*\{([^{}]*)\}`)
	fillDecl     = regexp.MustCompile(`(?:^|[;\s])fill\s*:\s*([^;}\s]+)`)
	classedTag   = regexp.MustCompile(`<[A-Za-z][\w:-]*\b[^<>]*?\bclass\s*=\s*"([^"]*)"[^<>]*>`)
	hasFillAttr  = regexp.MustCompile(`\sfill\s*=`)
	tagNameMatch = regexp.MustCompile(`^<[A-Za-z][\w:-]*`)
	styleBlock   = regexp.MustCompile(`(?s)<style\b[^>]*/>|<style\b[^>]*>.*?</style>`)
)

// classFills collects the fill declared for each class selector. The last
// declaration wins, mirroring the CSS cascade for equal specificity.
func classFills(svg string) map[string]string {
	fills := make(map[string]string)
	for _, m := range styleRule.FindAllStringSubmatch(svg, -1) {
		if f := fillDecl.FindStringSubmatch(m[2]); f != nil {
			fills[m[1]] = f[1]
		}
	}
	return fills
}

// InlineClassFills copies stylesheet fills onto the elements that carry the
// class, as presentation attributes. Elements that already declare a fill are
// left alone. The renderer only sees the document after StripStyleBlocks, so
// this is what makes a recolored palette visible in raster output.
func InlineClassFills(svg string) string {
	fills := classFills(svg)
	if len(fills) == 0 {
		return svg
	}

	return classedTag.ReplaceAllStringFunc(svg, func(tag string) string {
		if hasFillAttr.MatchString(tag) {
			return tag
		}
		classes := strings.Fields(classedTag.FindStringSubmatch(tag)[1])
		for i := len(classes) - 1; i >= 0; i-- {
			fill, ok := fills[classes[i]]
			if !ok {
				continue
			}
			name := tagNameMatch.FindString(tag)
			return name + ` fill="` + fill + `"` + tag[len(name):]
		}
		return tag
	})
}

// StripStyleBlocks removes every <style> element. The vector renderer rejects
// stylesheets it cannot parse (an empty rule is enough), and once class fills
// are inlined the stylesheet carries nothing it would draw.
func StripStyleBlocks(svg string) string {
	return styleBlock.ReplaceAllString(svg, "")
}
