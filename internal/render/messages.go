package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	msgSummary      = "showing %d of %d facilities"
	msgCapacity     = "%d people"
	msgNotProvided  = "not provided"
	msgNotSpecified = "not specified"
	msgNoResults    = "No facilities match your search."
	msgUnavailable  = "Facility data could not be loaded."
	msgSummaryNone  = "facility data unavailable"
	msgLabelCap     = "Capacity"
	msgLabelDiv     = "Division"
	msgLabelDetails = "View details"
	msgLabelMap     = "Open map"
)

// Supported lists the page locales, default first.
var Supported = []language.Tag{language.TraditionalChinese, language.English}

var matcher = language.NewMatcher(Supported)

// MatchLocale picks the supported locale closest to the requested one.
// Unknown or unparsable input falls back to Traditional Chinese.
func MatchLocale(requested string) language.Tag {
	tag, err := language.Parse(requested)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

var translations = map[language.Tag]map[string]string{
	language.TraditionalChinese: {
		msgSummary:      "顯示 %d / %d 個設施",
		msgCapacity:     "%d 人",
		msgNotProvided:  "未提供",
		msgNotSpecified: "未註明",
		msgNoResults:    "找不到符合條件的避難設施。",
		msgUnavailable:  "無法載入避難設施資料。",
		msgSummaryNone:  "設施資料無法使用",
		msgLabelCap:     "可容納人數",
		msgLabelDiv:     "轄管分局",
		msgLabelDetails: "查看專頁",
		msgLabelMap:     "在地圖開啟",
	},
	language.English: {
		msgSummary:      msgSummary,
		msgCapacity:     msgCapacity,
		msgNotProvided:  msgNotProvided,
		msgNotSpecified: msgNotSpecified,
		msgNoResults:    msgNoResults,
		msgUnavailable:  msgUnavailable,
		msgSummaryNone:  msgSummaryNone,
		msgLabelCap:     msgLabelCap,
		msgLabelDiv:     msgLabelDiv,
		msgLabelDetails: msgLabelDetails,
		msgLabelMap:     msgLabelMap,
	},
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range translations {
		for key, text := range msgs {
			// SetString only fails on malformed tags, and these are constants.
			_ = b.SetString(tag, key, text)
		}
	}
	return b
}

var defaultCatalog = newCatalog()

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(defaultCatalog))
}
