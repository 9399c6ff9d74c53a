package i18n

import "golang.org/x/text/language"

func builtinLocales() []Locale {
	return []Locale{
		{Tag: language.English, Dir: LTR, Messages: Messages{}},
		{Tag: language.French, Dir: LTR, Messages: frenchMessages},
		{Tag: language.Arabic, Dir: RTL, Messages: arabicMessages},
	}
}

var frenchMessages = Messages{
	"Today":           "Aujourd'hui",
	"Yesterday":       "Hier",
	"This week":       "Cette semaine",
	"Last week":       "Semaine dernière",
	"Last 7 days":     "7 derniers jours",
	"Last 30 days":    "30 derniers jours",
	"Last 365 days":   "365 derniers jours",
	"Last %d days":    "%d derniers jours",
	"From Date":       "Du",
	"Until":           "au",
	"Week":            "Semaine",
	"Q1":              "T1",
	"Q2":              "T2",
	"Q3":              "T3",
	"Q4":              "T4",
	"Previous Period": "Période précédente",
	"Previous Year":   "Année précédente",

	"January":   "janvier",
	"February":  "février",
	"March":     "mars",
	"April":     "avril",
	"May":       "mai",
	"June":      "juin",
	"July":      "juillet",
	"August":    "août",
	"September": "septembre",
	"October":   "octobre",
	"November":  "novembre",
	"December":  "décembre",

	"Jan": "janv.",
	"Feb": "févr.",
	"Mar": "mars",
	"Apr": "avr.",
	"Jun": "juin",
	"Jul": "juil.",
	"Aug": "août",
	"Sep": "sept.",
	"Oct": "oct.",
	"Nov": "nov.",
	"Dec": "déc.",
}

var arabicMessages = Messages{
	"Today":           "اليوم",
	"Yesterday":       "أمس",
	"This week":       "هذا الأسبوع",
	"Last week":       "الأسبوع الماضي",
	"Last 7 days":     "آخر 7 أيام",
	"Last 30 days":    "آخر 30 يومًا",
	"Last 365 days":   "آخر 365 يومًا",
	"Last %d days":    "آخر %d يومًا",
	"From Date":       "من تاريخ",
	"Until":           "حتى",
	"Week":            "الأسبوع",
	"Q1":              "الربع الأول",
	"Q2":              "الربع الثاني",
	"Q3":              "الربع الثالث",
	"Q4":              "الربع الرابع",
	"Previous Period": "الفترة السابقة",
	"Previous Year":   "السنة السابقة",

	"January":   "يناير",
	"February":  "فبراير",
	"March":     "مارس",
	"April":     "أبريل",
	"May":       "مايو",
	"June":      "يونيو",
	"July":      "يوليو",
	"August":    "أغسطس",
	"September": "سبتمبر",
	"October":   "أكتوبر",
	"November":  "نوفمبر",
	"December":  "ديسمبر",
}
