package app

import (
	"fmt"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// ViewController switches the visible page section
type ViewController struct {
	sections       []string
	defaultSection string
	resultsSection string
}

// NewViewController creates a controller over the page's sections
func NewViewController(config *domain.ViewConfig) *ViewController {
	return &ViewController{
		sections:       config.Sections,
		defaultSection: config.DefaultSection,
		resultsSection: config.ResultsSection,
	}
}

// Sections returns the section ids in page order
func (v *ViewController) Sections() []string {
	return v.sections
}

// DefaultSection is the section a new session opens on
func (v *ViewController) DefaultSection() string {
	return v.defaultSection
}

// ResultsSection is the section cards are rendered into
func (v *ViewController) ResultsSection() string {
	return v.resultsSection
}

// HasSection reports whether id names a page section
func (v *ViewController) HasSection(id string) bool {
	for _, s := range v.sections {
		if s == id {
			return true
		}
	}
	return false
}

// Activate deactivates every section and activates id. An unknown id
// leaves the session untouched.
func (v *ViewController) Activate(state *SessionState, id string) error {
	if !v.HasSection(id) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSection, id)
	}
	state.setActiveSection(id)
	return nil
}

// Resolve returns the section a page load with fragment shows: the named
// section when the page has it, the default section otherwise
func (v *ViewController) Resolve(fragment string) string {
	if v.HasSection(fragment) {
		return fragment
	}
	return v.defaultSection
}

// DeepLink activates the section a page load with fragment shows and
// returns its id
func (v *ViewController) DeepLink(state *SessionState, fragment string) string {
	section := v.Resolve(fragment)
	state.setActiveSection(section)
	return section
}

// IsActive reports whether section is the session's visible one
func (v *ViewController) IsActive(state *SessionState, section string) bool {
	return state.ActiveSection() == section
}
