package visual

import "fmt"

// Viewport is a device size screenshots are taken at.
type Viewport struct {
	Name   string
	Width  int
	Height int
	Mobile bool
}

func (v Viewport) String() string {
	return fmt.Sprintf("%s(%dx%d)", v.Name, v.Width, v.Height)
}

var (
	Desktop = Viewport{Name: "desktop", Width: 1280, Height: 800}
	Mobile  = Viewport{Name: "mobile", Width: 390, Height: 844, Mobile: true}
)

// DefaultViewports returns desktop and mobile.
func DefaultViewports() []Viewport {
	return []Viewport{Desktop, Mobile}
}

// DefaultStripSelectors removes elements marked as volatile by the site.
func DefaultStripSelectors() []string {
	return []string{"[data-volatile]"}
}
