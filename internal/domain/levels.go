package domain

// Level is a display rank derived from a profile's post count.
type Level struct {
	Rank     int    `json:"rank"`
	Title    string `json:"title"`
	MinPosts int    `json:"min_posts"`
}

var levelTable = []Level{
	{Rank: 1, Title: "Newcomer", MinPosts: 0},
	{Rank: 2, Title: "Member", MinPosts: 10},
	{Rank: 3, Title: "Regular", MinPosts: 50},
	{Rank: 4, Title: "Veteran", MinPosts: 150},
	{Rank: 5, Title: "Elder", MinPosts: 400},
	{Rank: 6, Title: "Legend", MinPosts: 1000},
}

// LevelFor returns the highest level whose threshold postCount meets.
func LevelFor(postCount int) Level {
	lvl := levelTable[0]
	for _, l := range levelTable {
		if postCount >= l.MinPosts {
			lvl = l
		}
	}
	return lvl
}
