// SPDX-License-Identifier: EPL-2.0

package dataset

import "slices"

const (
	// BackgroundLabel is reserved for the noise class.
	BackgroundLabel = 0
	// BackgroundClass names the noise class.
	BackgroundClass = "background"
)

// Classes is the label table. Label 0 is always the background class and
// the class folders follow in sorted order from label 1.
type Classes struct {
	names []string
}

// NewClasses sorts folders and assigns labels from 1.
func NewClasses(folders []string) Classes {
	sorted := slices.Clone(folders)
	slices.Sort(sorted)

	return Classes{names: append([]string{BackgroundClass}, sorted...)}
}

// Len counts every label, background included.
func (c Classes) Len() int { return len(c.names) }

// Names lists class names indexed by label.
func (c Classes) Names() []string { return slices.Clone(c.names) }

// Folders lists the class folders, without the background class.
func (c Classes) Folders() []string {
	if len(c.names) == 0 {
		return nil
	}

	return slices.Clone(c.names[1:])
}

// Label returns the label of a class name.
func (c Classes) Label(name string) (int, bool) {
	i := slices.Index(c.names, name)
	return i, i >= 0
}

// Name returns the class name for label, or "" when out of range.
func (c Classes) Name(label int) string {
	if label < 0 || label >= len(c.names) {
		return ""
	}

	return c.names[label]
}
