package render

// Palette holds the three accent colors a digest card is painted with.
type Palette struct {
	Dot        string
	Title      string
	Background string
}

// DefaultPalettes returns the rotation applied to cards in feed order:
// blue, teal, orange, purple. Card i uses palette i modulo the length.
func DefaultPalettes() []Palette {
	return []Palette{
		{Dot: "#4A90E2", Title: "#2C5F8D", Background: "#E8F4FD"},
		{Dot: "#00C9A7", Title: "#008B6B", Background: "#E0F7F4"},
		{Dot: "#FF8C42", Title: "#CC6D35", Background: "#FFF4ED"},
		{Dot: "#9B59B6", Title: "#7D3C98", Background: "#F4E8F7"},
	}
}
