package gradebook

import (
	"encoding/json"
	"sort"
)

// Export is the JSON projection of a retrieval: class title to assignments.
type Export map[string][]Assignment

func NewExport(classes []ClassGradeSet) Export {
	out := Export{}
	for _, c := range classes {
		out[c.Title] = append(out[c.Title], c.Assignments...)
	}
	return out
}

func (e Export) Marshal() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Classes converts the export back into class sets, ordered by title.
func (e Export) Classes() []ClassGradeSet {
	titles := make([]string, 0, len(e))
	for title := range e {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	classes := make([]ClassGradeSet, len(titles))
	for i, title := range titles {
		classes[i] = NewClassGradeSet(title, e[title]...)
	}
	return classes
}

func ParseExport(data []byte) (Export, error) {
	var out Export
	err := json.Unmarshal(data, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
