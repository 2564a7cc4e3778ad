package ripeness

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Treatment tags recognised in descriptions.
const (
	TagBajak = "bajak"
	TagCalit = "calit"
	TagRacun = "racun"
	TagTabur = "tabur"
)

var TreatmentTags = []string{TagBajak, TagCalit, TagRacun, TagTabur}

func IsTreatmentTag(s string) bool {
	for _, t := range TreatmentTags {
		if t == s {
			return true
		}
	}
	return false
}

var (
	// benih <seed words> up to the next "tarikh" or end of text
	seedRX = regexp.MustCompile(`(?is)\bbenih\b(.*?)(?:tarikh|$)`)
	dateRX = regexp.MustCompile(`(?i)tarikh\s+tanam\s*:?\s*(\d{1,2})/(\d{1,2})/(\d{4})`)
)

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"td": true, "th": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Parse extracts seed code, planting date and treatment tags from a plot
// description. It never fails; fields it cannot find are left empty.
func Parse(description string) ParseResult {
	text := PlainText(description)
	var out ParseResult
	if text == "" {
		return out
	}

	if m := seedRX.FindStringSubmatch(text); m != nil {
		seed := strings.TrimSpace(m[1])
		seed = strings.TrimSpace(strings.TrimLeft(seed, ":"))
		out.SeedCode = strings.ToUpper(seed)
	}

	if m := dateRX.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		out.PlantingDate = &CivilDate{Year: y, Month: mo, Day: d}
	}

	low := strings.ToLower(text)
	for _, t := range TreatmentTags {
		if strings.Contains(low, t) {
			out.Tags = append(out.Tags, t)
		}
	}
	sort.Strings(out.Tags)
	return out
}

// PlainText strips markup from s and collapses whitespace. Block elements
// become word separators so "<p>Benih CL</p><p>Tarikh ...</p>" keeps its
// fields apart.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, doc.Selection)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); name {
		case "#text":
			b.WriteString(s.Text())
		case "#comment", "script", "style":
		default:
			block := blockTags[name]
			if block {
				b.WriteByte(' ')
			}
			collectText(b, s)
			if block {
				b.WriteByte(' ')
			}
		}
	})
}
