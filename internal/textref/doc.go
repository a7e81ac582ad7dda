// Package textref extracts color references from procedure text.
//
// Procedure documents mention annotations in prose, e.g. "Click the Sign On
// button (red callout 1)" or "the gold highlight shows the balance". The
// parser scans the text line by line and recognizes four reference shapes:
//
//   - parenthetical: "(red callout 1)", "(blue highlight)"
//   - inline:        "the red arrow", "click the teal callout 2"
//   - number-first:  "callout 1 (red)"
//   - circled:       "red ①" and the other circled digits up to ⑩
//
// Figure headings ("Figure 3", "(Figure 3)") set the figure context for the
// references that follow, so each reference can be attributed to a figure.
// The aggregated figure -> annotation-number -> color mapping feeds the
// consistency validator, which compares it against the registry's color maps.
package textref
