// Package render assembles WeChat-compatible digest HTML: one inline-styled
// card per article, a rotating four-color palette, and the dated banner and
// END divider decorators. WeChat strips <style> blocks from published
// articles, so every rule the output relies on is carried inline.
package render
