package novelsrc

import (
	"strings"
)

// SiteFramework identifies a site theme family sharing characteristic markup.
type SiteFramework string

// Supported site frameworks, most specific first. The order is significant:
// it breaks ties during detection and orders framework listings.
const (
	FrameworkMadara        SiteFramework = "madara"
	FrameworkLightNovelWP  SiteFramework = "lightnovelwp"
	FrameworkReadNovelFull SiteFramework = "readnovelfull"
	FrameworkReadWN        SiteFramework = "readwn"
	FrameworkWordPress     SiteFramework = "wordpress"
	FrameworkCustom        SiteFramework = "custom"
)

var frameworks = []SiteFramework{
	FrameworkMadara,
	FrameworkLightNovelWP,
	FrameworkReadNovelFull,
	FrameworkReadWN,
	FrameworkWordPress,
	FrameworkCustom,
}

// Frameworks returns every framework in declaration order, Custom last.
func Frameworks() []SiteFramework {
	out := make([]SiteFramework, len(frameworks))
	copy(out, frameworks)
	return out
}

// Valid reports whether f is a known framework.
func (f SiteFramework) Valid() bool {
	for _, known := range frameworks {
		if f == known {
			return true
		}
	}
	return false
}

// ParseSiteFramework parses a framework name case-insensitively.
// An empty string parses as FrameworkCustom.
func ParseSiteFramework(s string) (SiteFramework, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FrameworkCustom, nil
	}
	f := SiteFramework(s)
	if !f.Valid() {
		return "", Errorf(EINVALID, "unknown site framework %q", s)
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
// An unset framework marshals as an empty string.
func (f SiteFramework) MarshalText() ([]byte, error) {
	if f != "" && !f.Valid() {
		return nil, Errorf(EINVALID, "unknown site framework %q", string(f))
	}
	return []byte(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty value stays unset.
func (f *SiteFramework) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*f = ""
		return nil
	}
	parsed, err := ParseSiteFramework(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// WizardStep is one stage of guided configuration authoring.
type WizardStep int

// Wizard steps in authoring order.
const (
	StepTrending WizardStep = iota
	StepSearchResult
	StepNovelCard
	StepNovelDetail
	StepChapterList
	StepChapterContent
	StepComplete
)

var stepNames = []string{
	"trending",
	"search-result",
	"novel-card",
	"novel-detail",
	"chapter-list",
	"chapter-content",
	"complete",
}

// WizardSteps returns every step in authoring order.
func WizardSteps() []WizardStep {
	steps := make([]WizardStep, 0, len(stepNames))
	for i := range stepNames {
		steps = append(steps, WizardStep(i))
	}
	return steps
}

// String returns the step's name.
func (s WizardStep) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Next returns the following step. Complete is terminal.
func (s WizardStep) Next() WizardStep {
	if s >= StepComplete {
		return StepComplete
	}
	return s + 1
}

// ParseWizardStep parses a step name such as "novel-card".
// Underscores and case are ignored.
func ParseWizardStep(s string) (WizardStep, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for i, name := range stepNames {
		if s == name || s == strings.ReplaceAll(name, "-", "") {
			return WizardStep(i), nil
		}
	}
	return 0, Errorf(EINVALID, "unknown wizard step %q", s)
}

// SelectorSuggestion is a candidate selector offered while authoring a
// configuration. Higher priority is preferred.
type SelectorSuggestion struct {
	Label     string        `json:"label"`
	Selector  string        `json:"selectorString"`
	Priority  int           `json:"priority"`
	Step      WizardStep    `json:"step"`
	Framework SiteFramework `json:"framework"`
}

// FrameworkDetector identifies site frameworks from raw HTML.
type FrameworkDetector interface {
	// Detect analyzes HTML and returns the identified framework.
	// Returns FrameworkCustom if no framework matches.
	Detect(html string) SiteFramework
}

// SuggestionLibrary provides prioritized selector candidates per framework
// and wizard step.
type SuggestionLibrary interface {
	// Suggest returns suggestions sorted by non-increasing priority.
	// StepComplete always yields an empty list.
	Suggest(framework SiteFramework, step WizardStep) []SelectorSuggestion

	// AvailableFrameworks returns all frameworks except Custom.
	AvailableFrameworks() []SiteFramework
}
