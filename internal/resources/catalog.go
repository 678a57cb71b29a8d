package resources

import "github.com/rcliao/mindmate/internal/model"

// Categories in display order. "All" matches every category.
const (
	CategoryAll         = "All"
	CategoryCrisis      = "Crisis Support"
	CategoryTherapy     = "Professional Therapy"
	CategorySelfCare    = "Self-Care & Mindfulness"
	CategoryCommunities = "Support Communities"
	CategoryEducational = "Educational"
)

var categories = []string{
	CategoryAll,
	CategoryCrisis,
	CategoryTherapy,
	CategorySelfCare,
	CategoryCommunities,
	CategoryEducational,
}

var catalog = []model.Resource{
	{
		ID:          "suicide-prevention",
		Title:       "National Suicide Prevention Lifeline",
		Description: "Free and confidential emotional support for people in suicidal crisis or emotional distress 24 hours a day, 7 days a week.",
		Category:    CategoryCrisis,
		Contact:     "988",
		URL:         "https://suicidepreventionlifeline.org/",
		Tags:        []string{"crisis", "suicide", "24/7", "hotline", "free"},
		Icon:        "phone",
	},
	{
		ID:          "crisis-text",
		Title:       "Crisis Text Line",
		Description: "Text-based crisis intervention for those in crisis. Text HOME to 741741 to reach the Crisis Text Line.",
		Category:    CategoryCrisis,
		Contact:     "Text HOME to 741741",
		URL:         "https://www.crisistextline.org/",
		Tags:        []string{"crisis", "text", "24/7", "free", "anonymous"},
		Icon:        "message",
	},
	{
		ID:          "lgbtq-hotline",
		Title:       "LGBTQ National Hotline",
		Description: "Confidential peer support for LGBTQ+ individuals and allies. Available 1-4pm EST Monday-Friday.",
		Category:    CategoryCrisis,
		Contact:     "1-888-843-4564",
		URL:         "https://www.lgbtqnationalhotline.org/",
		Tags:        []string{"lgbtq", "peer support", "identity", "crisis"},
		Icon:        "phone",
	},
	{
		ID:          "betterhelp",
		Title:       "BetterHelp",
		Description: "Online therapy platform connecting you with licensed therapists for convenient, affordable mental health care.",
		Category:    CategoryTherapy,
		Contact:     "Online Platform",
		URL:         "https://www.betterhelp.com/",
		Tags:        []string{"therapy", "online", "licensed", "affordable", "convenient"},
		Icon:        "external",
	},
	{
		ID:          "psychology-today",
		Title:       "Psychology Today Therapist Finder",
		Description: "Find licensed therapists, psychiatrists, and support groups in your area with detailed profiles and specialties.",
		Category:    CategoryTherapy,
		Contact:     "Directory Service",
		URL:         "https://www.psychologytoday.com/",
		Tags:        []string{"directory", "local", "therapist", "psychiatrist", "specialist"},
		Icon:        "external",
	},
	{
		ID:          "talkspace",
		Title:       "Talkspace",
		Description: "Text, audio, and video therapy with licensed professionals. Flexible scheduling and affordable plans.",
		Category:    CategoryTherapy,
		Contact:     "Online Platform",
		URL:         "https://www.talkspace.com/",
		Tags:        []string{"therapy", "text", "video", "flexible", "licensed"},
		Icon:        "external",
	},
	{
		ID:          "headspace-detailed",
		Title:       "Headspace",
		Description: "Meditation and mindfulness app with guided sessions for stress, anxiety, sleep, and focus.",
		Category:    CategorySelfCare,
		Contact:     "Mobile App",
		URL:         "https://www.headspace.com/",
		Tags:        []string{"meditation", "mindfulness", "stress", "anxiety", "sleep"},
		Icon:        "external",
	},
	{
		ID:          "calm",
		Title:       "Calm",
		Description: "Sleep stories, meditation, and relaxation tools to help you stress less, sleep more, and live mindfully.",
		Category:    CategorySelfCare,
		Contact:     "Mobile App",
		URL:         "https://www.calm.com/",
		Tags:        []string{"sleep", "meditation", "relaxation", "mindfulness", "stories"},
		Icon:        "external",
	},
	{
		ID:          "insight-timer",
		Title:       "Insight Timer",
		Description: "Free meditation app with thousands of guided meditations, music tracks, and talks from experts.",
		Category:    CategorySelfCare,
		Contact:     "Mobile App",
		URL:         "https://insighttimer.com/",
		Tags:        []string{"free", "meditation", "music", "community", "guided"},
		Icon:        "external",
	},
	{
		ID:          "nami-detailed",
		Title:       "National Alliance on Mental Illness (NAMI)",
		Description: "NAMI provides advocacy, education, support and public awareness so that all individuals and families affected by mental illness can build better lives.",
		Category:    CategoryCommunities,
		Contact:     "(800) 950-NAMI (6264)",
		URL:         "https://www.nami.org/",
		Tags:        []string{"advocacy", "education", "support groups", "family", "community"},
		Icon:        "external",
	},
	{
		ID:          "mha",
		Title:       "Mental Health America",
		Description: "Leading community-based nonprofit dedicated to addressing the needs of those living with mental illness.",
		Category:    CategoryCommunities,
		Contact:     "(800) 273-8255",
		URL:         "https://www.mhanational.org/",
		Tags:        []string{"community", "nonprofit", "advocacy", "screening", "resources"},
		Icon:        "external",
	},
	{
		ID:          "seven-cups",
		Title:       "7 Cups",
		Description: "Free emotional support through trained listeners and online therapy. Available 24/7 with a supportive community.",
		Category:    CategoryCommunities,
		Contact:     "Online Platform",
		URL:         "https://www.7cups.com/",
		Tags:        []string{"free", "emotional support", "listeners", "24/7", "community"},
		Icon:        "external",
	},
	{
		ID:          "mental-health-first-aid",
		Title:       "Mental Health First Aid",
		Description: "Learn how to help someone who is developing a mental health problem or experiencing a mental health crisis.",
		Category:    CategoryEducational,
		Contact:     "Training Program",
		URL:         "https://www.mentalhealthfirstaid.org/",
		Tags:        []string{"training", "first aid", "education", "crisis response", "skills"},
		Icon:        "external",
	},
	{
		ID:          "mindtools",
		Title:       "MindTools",
		Description: "Practical resources to help you develop management, leadership, and personal effectiveness skills.",
		Category:    CategoryEducational,
		Contact:     "Online Learning",
		URL:         "https://www.mindtools.com/",
		Tags:        []string{"skills", "leadership", "management", "personal growth"},
		Icon:        "external",
	},
}
