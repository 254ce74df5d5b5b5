package feature

import "strings"

// Choice is one selectable parameter value.
type Choice struct {
	Emoji string
	Name  string
}

// Label renders the choice as shown in pickers.
func (c Choice) Label() string {
	return c.Emoji + " " + c.Name
}

// Tones lists the tones offered by ToneChange.
var Tones = []Choice{
	{"😊", "Friendly"}, {"🤔", "Witty"}, {"🎓", "Academic"},
	{"😏", "Flirty"}, {"❤️", "Romantic"}, {"😢", "Sad"},
	{"😎", "Confident"}, {"😠", "Angry"}, {"😃", "Happy"},
	{"👔", "Professional"}, {"😒", "Sarcastic"},
}

// Languages lists the translation targets offered by Translate.
var Languages = []Choice{
	{"🇿🇦", "Afrikaans"}, {"🇸🇦", "Arabic"}, {"🇧🇩", "Bengali"}, {"🇨🇳", "Chinese (Simplified)"},
	{"🇨🇳", "Chinese (Traditional)"}, {"🇺🇸", "English"}, {"🇫🇷", "French"}, {"🇩🇪", "German"},
	{"🇮🇳", "Hindi"}, {"🇮🇹", "Italian"}, {"🇯🇵", "Japanese"}, {"🇰🇷", "Korean"}, {"🇵🇹", "Portuguese"},
	{"🇷🇺", "Russian"}, {"🇪🇸", "Spanish"}, {"🇰🇪", "Swahili"}, {"🇸🇪", "Swedish"}, {"🇮🇳", "Tamil"},
	{"🇮🇳", "Telugu"}, {"🇹🇭", "Thai"}, {"🇹🇷", "Turkish"}, {"🇺🇦", "Ukrainian"}, {"🇵🇰", "Urdu"},
	{"🇻🇳", "Vietnamese"}, {"🇿🇦", "Zulu"},
}

// Choices returns the catalog backing k's required parameter, or nil.
func (k Kind) Choices() []Choice {
	switch k.RequiredParam() {
	case ParamTone:
		return Tones
	case ParamLanguage:
		return Languages
	default:
		return nil
	}
}

// FindChoice looks name up case-insensitively in choices.
func FindChoice(choices []Choice, name string) (Choice, bool) {
	for _, c := range choices {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Choice{}, false
}
