// Package markdown hosts the goldmark-backed parser plus the filesystem
// loader used to author digest feeds as frontmatter Markdown documents.
package markdown
