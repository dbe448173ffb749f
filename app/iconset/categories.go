package iconset

var materialIconsCategories = map[string]string{
	"action":        "Action",
	"alert":         "Alert",
	"av":            "Audio & Video",
	"communication": "Communication",
	"content":       "Content",
	"device":        "Device",
	"editor":        "Editor",
	"file":          "File",
	"hardware":      "Hardware",
	"home":          "Home",
	"image":         "Image",
	"maps":          "Maps",
	"navigation":    "Navigation",
	"notification":  "Notification",
	"places":        "Places",
	"search":        "Search",
	"social":        "Social",
	"toggle":        "Toggle",
}

var materialSymbolsCategories = map[string]string{
	"Actions":     "Actions",
	"Activities":  "Activities",
	"Android":     "Android",
	"Audio&Video": "Audio & Video",
	"Business":    "Business",
	"Communicate": "Communicate",
	"Hardware":    "Hardware",
	"Home":        "Home",
	"Household":   "Household",
	"Images":      "Images",
	"Maps":        "Maps",
	"Privacy":     "Privacy",
	"Social":      "Social",
	"Text":        "Text",
	"Transit":     "Transit",
	"Travel":      "Travel",
	"UI actions":  "UI actions",
}

// materialCategories is the merged dictionary used for every Material variant.
var materialCategories = mergeCategories(materialIconsCategories, materialSymbolsCategories)

var phosphorCategories = map[string]string{
	"ARROWS":        "Arrows",
	"BRAND":         "Brands",
	"COMMERCE":      "Commerce",
	"COMMUNICATION": "Communication",
	"DESIGN":        "Design",
	"DEVELOPMENT":   "Technology & Development",
	"EDITOR":        "Editor",
	"FINANCE":       "Finances",
	"GAMES":         "Games",
	"HEALTH":        "Health & Wellness",
	"MAP":           "Maps & Travel",
	"MEDIA":         "Media",
	"NATURE":        "Nature",
	"OBJECTS":       "Objects",
	"OFFICE":        "Office",
	"PEOPLE":        "People",
	"SYSTEM":        "System",
	"WEATHER":       "Weather",
}

func mergeCategories(dictionaries ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, dictionary := range dictionaries {
		for key, name := range dictionary {
			merged[key] = name
		}
	}
	return merged
}
