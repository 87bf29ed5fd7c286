package notebook

import "fmt"

// CheckIntegrity reports every broken cross reference between the fields,
// fviews, viewsets and visible_types collections. An empty result means the
// document is consistent.
func (s *UISpec) CheckIntegrity() []string {
	var problems []string

	owner := make(map[string]string)
	for _, id := range sortedKeys(s.FViews) {
		for _, name := range s.FViews[id].Fields {
			if _, ok := s.Fields[name]; !ok {
				problems = append(problems, fmt.Sprintf("section %s references unknown field %s", id, name))
			}
			if prev, dup := owner[name]; dup {
				problems = append(problems, fmt.Sprintf("field %s is listed in sections %s and %s", name, prev, id))
				continue
			}
			owner[name] = id
		}
	}

	for _, id := range sortedKeys(s.ViewSets) {
		for _, view := range s.ViewSets[id].Views {
			if _, ok := s.FViews[view]; !ok {
				problems = append(problems, fmt.Sprintf("form %s references unknown section %s", id, view))
			}
		}
	}

	for _, id := range s.VisibleTypes {
		if _, ok := s.ViewSets[id]; !ok {
			problems = append(problems, fmt.Sprintf("visible_types references unknown form %s", id))
		}
	}

	return problems
}

// RelatedReferences lists the fields outside formID whose RelatedRecordSelector
// points at formID.
func (s *UISpec) RelatedReferences(formID string) []string {
	inside := make(map[string]bool)
	for _, name := range s.FormFields(formID) {
		inside[name] = true
	}

	var refs []string
	for _, name := range sortedKeys(s.Fields) {
		f := s.Fields[name]
		if inside[name] || f.ComponentName != "RelatedRecordSelector" {
			continue
		}
		if f.ComponentParameters.String("related_type") == formID {
			refs = append(refs, name)
		}
	}
	return refs
}
