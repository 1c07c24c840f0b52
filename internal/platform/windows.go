package platform

const (
	systemRoot   = `${SystemRoot:-C:\Windows}`
	localAppData = "${LOCALAPPDATA}"
)

// Category names, in the order a run visits them
const (
	CategoryTemp       = "temp"
	CategoryBrowser    = "browser"
	CategoryPrefetch   = "prefetch"
	CategoryThumbnails = "thumbnails"
)

// Categories returns the fixed Windows cleanup table in run order
func Categories() []Category {
	return []Category{
		{
			Name:  CategoryTemp,
			Title: "Cleaning Windows temp directories...",
			Targets: []Target{
				{Label: "User temp", Path: "${TEMP}", Mode: ModeShallow},
				{Label: "User temp", Path: "${TMP}", Mode: ModeShallow},
				{Label: "Windows temp", Path: systemRoot + "/Temp", Mode: ModeShallow},
			},
		},
		{
			Name:    CategoryBrowser,
			Title:   "Cleaning browser caches...",
			Targets: browserTargets(),
		},
		{
			Name:  CategoryPrefetch,
			Title: "Cleaning Windows prefetch...",
			Targets: []Target{
				{Label: "Prefetch", Path: systemRoot + "/Prefetch", Mode: ModeAgeFiltered},
			},
		},
		{
			Name:  CategoryThumbnails,
			Title: "Cleaning thumbnail cache...",
			Targets: []Target{
				{Label: "Explorer thumbnail cache", Path: localAppData + "/Microsoft/Windows/Explorer", Mode: ModeShallow},
			},
		},
	}
}

// browserTargets lists Chromium-family caches of the Default profile and
// every Firefox profile's cache2 directory
func browserTargets() []Target {
	chromium := []struct {
		name string
		dir  string
	}{
		{"Chrome", "Google/Chrome/User Data/Default"},
		{"Edge", "Microsoft/Edge/User Data/Default"},
		{"Brave", "BraveSoftware/Brave-Browser/User Data/Default"},
	}

	var targets []Target
	for _, b := range chromium {
		targets = append(targets,
			Target{Label: b.name + " Cache", Path: localAppData + "/" + b.dir + "/Cache", Mode: ModeRecursive, Announce: true},
			Target{Label: b.name + " Code Cache", Path: localAppData + "/" + b.dir + "/Code Cache", Mode: ModeRecursive, Announce: true},
		)
	}

	return append(targets,
		Target{Label: "Opera Cache", Path: localAppData + "/Opera Software/Opera Stable/Cache", Mode: ModeRecursive, Announce: true},
		Target{Label: "Firefox Cache", Path: localAppData + "/Mozilla/Firefox/Profiles", Pattern: "*/cache2", Mode: ModeRecursive, Announce: true},
	)
}

// Lookup returns the category with the given name
func Lookup(name string) (Category, bool) {
	for _, c := range Categories() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
