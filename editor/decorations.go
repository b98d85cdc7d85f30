package editor

// DecorationOptions selects how a decoration is drawn. Class names are
// resolved to styles through Style.Classes and the active theme.
type DecorationOptions struct {
	IsWholeLine     bool
	ClassName       string
	InlineClassName string
}

// Decoration binds options to a line range.
type Decoration struct {
	Range   LineRange
	Options DecorationOptions
}

// DecorationsCollection is a handle to decorations created together. The
// owner clears it and creates a new one when its lines change.
type DecorationsCollection interface {
	Clear()
	Len() int
	Ranges() []LineRange
}

type decorationsCollection struct {
	e           *Editor
	decorations []Decoration
	cleared     bool
}

// CreateDecorationsCollection adds decorations to the editor and returns the
// handle that removes them.
func (e *Editor) CreateDecorationsCollection(decorations []Decoration) DecorationsCollection {
	c := &decorationsCollection{
		e:           e,
		decorations: append([]Decoration(nil), decorations...),
	}
	if e.disposed {
		c.decorations = nil
		c.cleared = true
		return c
	}
	e.decorations = append(e.decorations, c)
	e.revision++
	return c
}

func (c *decorationsCollection) Clear() {
	if c.cleared {
		return
	}
	c.cleared = true
	c.decorations = nil
	for i, other := range c.e.decorations {
		if other == c {
			c.e.decorations = append(c.e.decorations[:i:i], c.e.decorations[i+1:]...)
			break
		}
	}
	c.e.revision++
}

func (c *decorationsCollection) Len() int { return len(c.decorations) }

func (c *decorationsCollection) Ranges() []LineRange {
	out := make([]LineRange, 0, len(c.decorations))
	for _, d := range c.decorations {
		out = append(out, d.Range)
	}
	return out
}

// Decorations returns every live decoration in creation order.
func (e *Editor) Decorations() []Decoration {
	var out []Decoration
	for _, c := range e.decorations {
		out = append(out, c.decorations...)
	}
	return out
}

// decorationsByLine indexes live decorations by internal line number. Whole
// line decorations cover every line of their range.
func (e *Editor) decorationsByLine() map[int][]DecorationOptions {
	out := make(map[int][]DecorationOptions)
	for _, c := range e.decorations {
		for _, d := range c.decorations {
			end := max(d.Range.EndLineNumber, d.Range.StartLineNumber)
			for line := d.Range.StartLineNumber; line <= end; line++ {
				out[line] = append(out[line], d.Options)
			}
		}
	}
	return out
}
