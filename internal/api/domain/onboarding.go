package domain

// OnboardingData is the single payload the onboarding wizard submits:
// profile names, preferences, and optionally the user's first card.
type OnboardingData struct {
	FirstName   string
	LastName    string
	Preferences PreferencesData
	Card        *CardData // nil when the user skipped card creation
}

type PreferencesData struct {
	Notifications bool
	DarkMode      bool
	Currency      Currency
}

type CardData struct {
	Name  string
	Type  CardType
	Last4 string
}

// OnboardingResult collects everything created or updated by a successful
// onboarding run.
type OnboardingResult struct {
	User        User
	Preferences Preferences
	Card        *Card
}
