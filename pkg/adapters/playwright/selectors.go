package playwright

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	pw "github.com/playwright-community/playwright-go"
)

type selectorKind int

const (
	selectorCSS selectorKind = iota
	selectorXPath
	selectorText
	selectorAria
)

// parsedSelector is one candidate selector in Playwright terms. For aria selectors query holds
// the accessible name; for every other kind it is a Playwright selector string.
type parsedSelector struct {
	kind  selectorKind
	query string
}

var (
	partialTextSelector = regexp.MustCompile(`^([A-Za-z][\w-]*)?\*=(.+)$`)
	exactTextSelector   = regexp.MustCompile(`^([A-Za-z][\w-]*)?=(.+)$`)
)

// parseSelector converts a recorder-style selector into a Playwright selector.
//
//	aria/Submit        accessible name
//	//button, (//a)[2] XPath
//	button=Submit      button whose text is exactly "Submit"
//	button*=Sub        button containing "Sub"
//	=Submit, *=Sub     any element, exact or partial text
//	anything else      CSS
func parseSelector(raw string) parsedSelector {
	s := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(s, "aria/"):
		return parsedSelector{kind: selectorAria, query: strings.TrimPrefix(s, "aria/")}
	case strings.HasPrefix(s, "//"), strings.HasPrefix(s, "(//"):
		return parsedSelector{kind: selectorXPath, query: "xpath=" + s}
	}

	if m := partialTextSelector.FindStringSubmatch(s); m != nil {
		if m[1] == "" {
			return parsedSelector{kind: selectorText, query: "text=" + m[2]}
		}
		return parsedSelector{kind: selectorText, query: fmt.Sprintf("%s:has-text(%s)", m[1], strconv.Quote(m[2]))}
	}
	if m := exactTextSelector.FindStringSubmatch(s); m != nil {
		if m[1] == "" {
			return parsedSelector{kind: selectorText, query: "text=" + strconv.Quote(m[2])}
		}
		return parsedSelector{kind: selectorText, query: fmt.Sprintf("%s:text-is(%s)", m[1], strconv.Quote(m[2]))}
	}

	return parsedSelector{kind: selectorCSS, query: s}
}

// locators returns the Playwright locators a candidate expands to, in preference order.
func (p parsedSelector) locators(page pw.Page) []pw.Locator {
	if p.kind == selectorAria {
		return []pw.Locator{
			page.GetByLabel(p.query, pw.PageGetByLabelOptions{Exact: pw.Bool(true)}),
			page.GetByText(p.query, pw.PageGetByTextOptions{Exact: pw.Bool(true)}),
		}
	}
	return []pw.Locator{page.Locator(p.query)}
}

// resolve tries each candidate selector in order and returns the first locator with at least
// one match. position selects the nth match; nil means the first.
func resolve(page pw.Page, selectors []string, position *int) (pw.Locator, error) {
	if len(selectors) == 0 {
		return nil, fmt.Errorf("%w: no selectors given", domain.ErrNoElement)
	}

	for _, raw := range selectors {
		for _, loc := range parseSelector(raw).locators(page) {
			count, err := loc.Count()
			if err != nil || count == 0 {
				continue
			}
			if position == nil {
				return loc.First(), nil
			}
			if *position >= count {
				continue
			}
			return loc.Nth(*position), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrNoElement, strings.Join(selectors, ", "))
}
