package model

import "strings"

// Subject is a catalog subject with its fixed topic list.
type Subject struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// HasTopic reports whether topic belongs to the subject.
func (s Subject) HasTopic(topic string) bool {
	for _, t := range s.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

var catalog = []Subject{
	{ID: "math", Name: "Mathematics", Topics: []string{"Algebra Basics", "Geometry", "Trigonometry", "Calculus", "Statistics"}},
	{ID: "science", Name: "Science", Topics: []string{"Physics - Motion", "Chemistry - Atoms", "Biology - Cells", "Earth Science", "Astronomy"}},
	{ID: "english", Name: "English", Topics: []string{"Grammar Rules", "Literature Analysis", "Essay Writing", "Vocabulary", "Reading Comprehension"}},
	{ID: "history", Name: "History", Topics: []string{"Ancient Civilizations", "World Wars", "American History", "European History", "Modern History"}},
	{ID: "art", Name: "Art", Topics: []string{"Drawing Techniques", "Color Theory", "Art History", "Digital Art", "Sculpture"}},
}

// Catalog returns a copy of the subject catalog in display order.
func Catalog() []Subject {
	out := make([]Subject, len(catalog))
	for i, s := range catalog {
		out[i] = Subject{ID: s.ID, Name: s.Name, Topics: append([]string(nil), s.Topics...)}
	}
	return out
}

// LookupSubject finds a subject by short id or by name, ignoring case.
func LookupSubject(key string) (Subject, bool) {
	key = strings.TrimSpace(key)
	for _, s := range catalog {
		if strings.EqualFold(s.ID, key) || strings.EqualFold(s.Name, key) {
			return Subject{ID: s.ID, Name: s.Name, Topics: append([]string(nil), s.Topics...)}, true
		}
	}
	return Subject{}, false
}
