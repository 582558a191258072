package main

// Portfolio copy rendered by the public pages.

type project struct {
	Title   string
	Summary string
}

type timelineEntry struct {
	Title     string
	Place     string
	StartDate string
	EndDate   string
	LogoPath  string
	Bullets   []string
}

var (
	AboutMe = `I build software that is both useful and fun, and I'm always curious about how things work
	behind the scenes. Most of my projects start with a small idea and turn into a chance to learn something
	new, whether that means a different language, a new tool, or a tricky problem. Lately that has meant
	keeping my own job search organised: this site doubles as the admin panel I track interviews with.`

	Projects = []project{
		{
			Title: "Interview Tracker",
			Summary: `The admin side of this site: a live-updating record of every recruiter call, interview
	round and follow-up, grouped by week, searchable and exportable to CSV.`,
		},
		{
			Title: "Terminal Mail",
			Summary: `A terminal-based email client built in Go with fuzzy finding, using the Charmbracelet TUI
	framework and go-imap.`,
		},
		{
			Title: "Terminal Music",
			Summary: `A TUI music player in Go that streams YouTube Music through yt-dlp and mpv straight from
	the command line.`,
		},
		{
			Title: "Game Recommender",
			Summary: `A web app that recommends games with TF-IDF vectors and cosine similarity, with
	interactive charts and filtering by reviews and ratings.`,
		},
	}

	Work = []timelineEntry{
		{
			Title:     "Presentation Expert",
			Place:     "Target",
			StartDate: "Aug 2023",
			EndDate:   "Present",
			LogoPath:  "images/TargetLogo.jpg",
			Bullets: []string{
				"Executed over 300 merchandising transitions on tight timelines by organizing team workflows",
				"Streamlined backroom inventory processes and floor-to-logistics communication",
				"Standardized daily pricing and signage checks across departments",
			},
		},
		{
			Title:     "Manager",
			Place:     "Jasons Catered Events",
			StartDate: "Aug 2016",
			EndDate:   "Present",
			LogoPath:  "images/jasonsCateringLogo.png",
			Bullets: []string{
				"Coordinated customized menus and met every dietary requirement",
				"Troubleshot event AV equipment and managed digital order tracking",
				"Kept supply inventory and deliveries between venues on schedule",
			},
		},
	}

	Education = []timelineEntry{
		{
			Title:     "Bachelor of Computer Science",
			Place:     "Western Governors University",
			StartDate: "Sept 2019",
			EndDate:   "May 2023",
			LogoPath:  "images/WGU-logo.png",
			Bullets: []string{
				"Graduated Magna Cum Laude with 3.8 GPA",
				"Relevant coursework: Data Structures, Algorithms, Web Development",
				"Senior project: Machine Learning recommendation system",
			},
		},
		{
			Title:     "Project Management",
			Place:     "CompTIA",
			StartDate: "July 2022",
			EndDate:   "Present",
			LogoPath:  "images/comptiaCert.png",
			Bullets: []string{
				"Certified in agile project management methodology",
			},
		},
	}
)
