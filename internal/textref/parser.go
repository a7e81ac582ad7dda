package textref

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/screenshot-annotate/internal/palette"
)

// Annotation type keywords recognized in prose. Broader than the renderer's
// type set on purpose: writers say "marker" and "box" even though the tool
// draws them as callouts and highlights.
var annotationTypes = []string{
	"callout",
	"arrow",
	"highlight",
	"circle",
	"box",
	"label",
	"marker",
	"number",
	"indicator",
}

// contextLimit caps the stored context snippet per reference.
const contextLimit = 100

var (
	parentheticalRe *regexp.Regexp
	inlineRe        *regexp.Regexp
	numberFirstRe   *regexp.Regexp
	colorWordRe     *regexp.Regexp

	figureRe  = regexp.MustCompile(`\(?[Ff]igure\s+(\d+)\)?`)
	circledRe = regexp.MustCompile(`[①②③④⑤⑥⑦⑧⑨⑩]`)
)

var circledNumbers = map[string]int{
	"①": 1, "②": 2, "③": 3, "④": 4, "⑤": 5,
	"⑥": 6, "⑦": 7, "⑧": 8, "⑨": 9, "⑩": 10,
}

func init() {
	colors := strings.Join(palette.Names(), "|")
	types := strings.Join(annotationTypes, "|")

	parentheticalRe = regexp.MustCompile(
		`(?i)\((` + colors + `)\s+(` + types + `)(?:\s+(\d+))?\)`)
	inlineRe = regexp.MustCompile(
		`(?i)(?:the|see|click|select)\s+(` + colors + `)\s+(` + types + `)(?:\s+(\d+))?`)
	numberFirstRe = regexp.MustCompile(
		`(?i)(` + types + `)\s+(\d+)\s*\((` + colors + `)\)`)
	colorWordRe = regexp.MustCompile(`(?i)\b(` + colors + `)\b`)
}

// Reference is one color mention found in the text. Number and Figure are 0
// when the reference carries no annotation number or appears outside any
// figure context.
type Reference struct {
	Color          string `json:"color"`
	Hex            string `json:"hex"`
	AnnotationType string `json:"annotation_type"`
	Number         int    `json:"number"`
	Line           int    `json:"line"`
	Figure         int    `json:"figure"`
	Pattern        string `json:"pattern"`
	Context        string `json:"context"`
}

// Export is the JSON document summarizing a parse.
type Export struct {
	References        []Reference            `json:"references"`
	ByFigure          map[int][]Reference    `json:"by_figure"`
	ExpectedColors    map[int]map[int]string `json:"expected_colors"`
	TotalCount        int                    `json:"total_count"`
	FiguresReferenced []int                  `json:"figures_referenced"`
}

// Parser scans procedure text for color references. Not safe for concurrent
// use; parse state is reset on each ParseText call.
type Parser struct {
	references    []Reference
	byFigure      map[int][]Reference
	currentFigure int
}

// NewParser creates an empty color-reference parser.
func NewParser() *Parser {
	return &Parser{byFigure: make(map[int][]Reference)}
}

// ParseFile parses a procedure markdown or text file.
func (p *Parser) ParseFile(path string) ([]Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read procedure text: %w", err)
	}
	return p.ParseText(string(data)), nil
}

// ParseText parses text content and returns all references found, in
// document order. Previous parse results are discarded.
func (p *Parser) ParseText(text string) []Reference {
	p.references = nil
	p.byFigure = make(map[int][]Reference)
	p.currentFigure = 0

	for i, line := range strings.Split(text, "\n") {
		p.parseLine(line, i+1)
	}
	return p.references
}

func (p *Parser) parseLine(line string, lineNum int) {
	// A figure heading switches context for everything after it, including
	// references on the same line.
	if m := figureRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.currentFigure = n
		}
	}

	for _, m := range parentheticalRe.FindAllStringSubmatch(line, -1) {
		p.add(m[1], m[2], atoiOrZero(m[3]), lineNum, "parenthetical", line)
	}
	for _, m := range inlineRe.FindAllStringSubmatch(line, -1) {
		p.add(m[1], m[2], atoiOrZero(m[3]), lineNum, "inline", line)
	}
	for _, m := range numberFirstRe.FindAllStringSubmatch(line, -1) {
		p.add(m[3], m[1], atoiOrZero(m[2]), lineNum, "number_first", line)
	}

	// Circled digits count as callout references when a color word appears
	// earlier on the line: "red ①".
	for _, loc := range circledRe.FindAllStringIndex(line, -1) {
		num := circledNumbers[line[loc[0]:loc[1]]]
		if num == 0 {
			continue
		}
		if color := nearestColorWord(line[:loc[0]]); color != "" {
			p.add(color, "callout", num, lineNum, "circled", line)
		}
	}
}

// nearestColorWord returns the last palette color word in text, or "".
func nearestColorWord(text string) string {
	matches := colorWordRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.ToLower(matches[len(matches)-1])
}

func (p *Parser) add(color, annType string, number, lineNum int, pattern, line string) {
	name := strings.ToLower(color)
	hex, ok := palette.Colors[name]
	if !ok {
		hex = palette.Colors[palette.DefaultColor]
	}

	context := truncateContext(strings.TrimSpace(line))

	ref := Reference{
		Color:          name,
		Hex:            hex,
		AnnotationType: strings.ToLower(annType),
		Number:         number,
		Line:           lineNum,
		Figure:         p.currentFigure,
		Pattern:        pattern,
		Context:        context,
	}

	p.references = append(p.references, ref)
	if p.currentFigure != 0 {
		p.byFigure[p.currentFigure] = append(p.byFigure[p.currentFigure], ref)
	}
}

// ByFigure returns references grouped by the figure they were attributed to.
func (p *Parser) ByFigure() map[int][]Reference {
	return p.byFigure
}

// ExpectedColors aggregates references into the figure -> annotation-number
// -> color-name mapping the consistency validator consumes. Only references
// with both a figure context and an annotation number contribute; a later
// reference to the same annotation wins.
func (p *Parser) ExpectedColors() map[int]map[int]string {
	out := make(map[int]map[int]string)
	for _, ref := range p.references {
		if ref.Figure == 0 || ref.Number == 0 {
			continue
		}
		if out[ref.Figure] == nil {
			out[ref.Figure] = make(map[int]string)
		}
		out[ref.Figure][ref.Number] = ref.Color
	}
	return out
}

// ToJSON builds the exportable parse summary.
func (p *Parser) ToJSON() Export {
	figures := make([]int, 0, len(p.byFigure))
	for fig := range p.byFigure {
		figures = append(figures, fig)
	}
	sort.Ints(figures)

	refs := p.references
	if refs == nil {
		refs = []Reference{}
	}

	return Export{
		References:        refs,
		ByFigure:          p.byFigure,
		ExpectedColors:    p.ExpectedColors(),
		TotalCount:        len(p.references),
		FiguresReferenced: figures,
	}
}

// truncateContext caps the context snippet, backing up to a rune boundary so
// a multibyte character (the circled digits are three bytes) is never split.
func truncateContext(s string) string {
	if len(s) <= contextLimit {
		return s
	}
	cut := contextLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
