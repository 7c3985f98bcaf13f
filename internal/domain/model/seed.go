package model

// SeedRoster returns the built-in leader list used when no persisted
// roster exists yet. Ids are stable so follow/rating state survives a
// reseed against the same dataset.
func SeedRoster() Roster {
	return Roster{
		{ID: "1", Name: "Narendra Modi", Role: "MP", Party: "Bharatiya Janata Party (BJP)", Constituency: "Varanasi", State: "Uttar Pradesh", Rating: 4.8, RatingCount: 12450, Attendance: 100, Bills: 0, Debates: 15, Questions: 0, SinceYear: 2014, IsFollowed: true},
		{ID: "2", Name: "Rahul Gandhi", Role: "MP", Party: "Indian National Congress (INC)", Constituency: "Rae Bareli", State: "Uttar Pradesh", Rating: 4.2, RatingCount: 8900, Attendance: 55, Bills: 1, Debates: 12, Questions: 25, SinceYear: 2004},
		{ID: "3", Name: "Mamata Banerjee", Role: "MLA", Party: "All India Trinamool Congress (TMC)", Constituency: "Bhabanipur", State: "West Bengal", Rating: 4.3, RatingCount: 7600, Attendance: 95, Bills: 12, Debates: 45, Questions: 0, SinceYear: 2011},
		{ID: "4", Name: "Arvind Kejriwal", Role: "MLA", Party: "Aam Aadmi Party (AAP)", Constituency: "New Delhi", State: "Delhi", Rating: 4.1, RatingCount: 6500, Attendance: 92, Bills: 8, Debates: 30, Questions: 0, SinceYear: 2013},
		{ID: "5", Name: "Priya Sharma", Role: "MP", Party: "Bharatiya Janata Party (BJP)", Constituency: "Delhi East", State: "Delhi", Rating: 4.5, RatingCount: 412, Attendance: 92, Bills: 12, Debates: 34, Questions: 89, SinceYear: 2019},
		{ID: "6", Name: "Vikram Singh", Role: "MLA", Party: "Bharatiya Janata Party (BJP)", Constituency: "Jaipur Central", State: "Rajasthan", Rating: 4.3, RatingCount: 189, Attendance: 89, Bills: 4, Debates: 28, Questions: 72, SinceYear: 2021},
	}
}
