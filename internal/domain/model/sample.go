package model

// SampleEntries returns the demonstration history shown when the store is
// configured to fall back to sample data.
func SampleEntries() []ProgressEntry {
	return []ProgressEntry{
		{ID: "1", Date: "2024-01-15", Subject: "Mathematics", Topic: "Algebra Basics", Correct: 18, Wrong: 2, Total: 20, NetScore: 17.5},
		{ID: "2", Date: "2024-01-14", Subject: "Science", Topic: "Physics - Motion", Correct: 15, Wrong: 5, Total: 20, NetScore: 13.75},
		{ID: "3", Date: "2024-01-13", Subject: "English", Topic: "Grammar Rules", Correct: 16, Wrong: 4, Total: 20, NetScore: 15},
		{ID: "4", Date: "2024-01-12", Subject: "History", Topic: "Ancient Civilizations", Correct: 14, Wrong: 6, Total: 20, NetScore: 12.5},
		{ID: "5", Date: "2024-01-11", Subject: "Art", Topic: "Color Theory", Correct: 17, Wrong: 3, Total: 20, NetScore: 16.25},
	}
}

// SampleStudents returns the fixed analytics roster.
func SampleStudents() []Student {
	return []Student{
		{ID: "student1", Name: "Alice Johnson", Email: "alice@school.edu"},
		{ID: "student2", Name: "Bob Smith", Email: "bob@school.edu"},
		{ID: "student3", Name: "Carol Davis", Email: "carol@school.edu"},
		{ID: "student4", Name: "David Wilson", Email: "david@school.edu"},
	}
}

// SampleRecords returns the fixed analytics records.
func SampleRecords() []AnalyticsRecord {
	return []AnalyticsRecord{
		{Date: "2024-01-10", Student: "Alice Johnson", Subject: "Mathematics", Score: 85},
		{Date: "2024-01-11", Student: "Alice Johnson", Subject: "Science", Score: 78},
		{Date: "2024-01-12", Student: "Bob Smith", Subject: "Mathematics", Score: 92},
		{Date: "2024-01-13", Student: "Carol Davis", Subject: "English", Score: 88},
		{Date: "2024-01-14", Student: "David Wilson", Subject: "History", Score: 76},
		{Date: "2024-01-15", Student: "Alice Johnson", Subject: "Mathematics", Score: 90},
	}
}
