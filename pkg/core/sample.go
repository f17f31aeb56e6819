package core

// Sample is a single corpus image plus its annotations and license tag.
// The curation pipeline never inspects image content; it only counts
// samples and forwards them between collaborators.
type Sample struct {
	ID        string            `json:"id" yaml:"id"`
	ImagePath string            `json:"image_path" yaml:"image_path"`
	License   string            `json:"license,omitempty" yaml:"license,omitempty"`
	Classes   []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasAnyClass reports whether the sample is tagged with at least one of
// the given classes. An empty filter matches every sample.
func (s Sample) HasAnyClass(classes []string) bool {
	if len(classes) == 0 {
		return true
	}
	for _, want := range classes {
		for _, have := range s.Classes {
			if have == want {
				return true
			}
		}
	}
	return false
}
