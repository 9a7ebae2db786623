// Package paper extracts structured metadata from a plain-text manuscript.
// It is a collaborator of the orchestration engine: the engine consumes the
// PaperInfo it produces but never parses manuscript text itself.
package paper

import (
	"regexp"
	"strings"

	"roundtable/internal/types"
)

// standardSections are headings commonly found in scientific papers.
var standardSections = []string{
	"Abstract", "Introduction", "Background", "Related Work", "Literature Review",
	"Methods", "Methodology", "Materials and Methods", "Experimental Setup",
	"Results", "Experiments", "Evaluation", "Findings",
	"Discussion", "Analysis", "Implications",
	"Conclusion", "Conclusions", "Future Work", "Limitations",
	"References", "Bibliography", "Acknowledgments", "Appendix",
}

var (
	authorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)(?:Authors?|by):\s*([^\n]+)`),
		regexp.MustCompile(`(?m)^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+(?:,\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)*)$`),
	}
	abstractPattern = regexp.MustCompile(`(?is)(?:Abstract|Summary)[:.\n]\s*(.+?)(?:\n\n|\n[A-Z]|\n\d+\.|$)`)

	numberedSection = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s*\.?\s+([A-Z][A-Za-z\s\-:]+)$`)
	romanSection    = regexp.MustCompile(`^([IVX]+(?:\.[IVX]+)*)\s*\.?\s+([A-Z][A-Za-z\s\-:]+)$`)
	capsSection     = regexp.MustCompile(`^[A-Z][A-Z\s\-]{2,}$`)
	markdownSection = regexp.MustCompile(`^#+\s+(.+)$`)
	sectionNumPrefix = regexp.MustCompile(`^\d+\.?\d*\s*`)
)

// Extract derives title, authors, abstract and section structure from the
// manuscript text using line and pattern heuristics.
func Extract(text string) types.PaperInfo {
	return types.PaperInfo{
		Title:    extractTitle(text),
		Authors:  extractAuthors(text),
		Abstract: extractAbstract(text),
		Length:   len(text),
		Sections: IdentifySections(text),
	}
}

// extractTitle takes the first non-empty line.
func extractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return "Unknown title"
}

func extractAuthors(text string) string {
	for _, pattern := range authorPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return "Unknown authors"
}

func extractAbstract(text string) string {
	if m := abstractPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Abstract not found"
}

// IdentifySections scans the manuscript for headings: numbered sections,
// Roman numerals, all-caps lines, markdown headers and the standard section
// vocabulary. Falls back to a substring search against the standard list when
// too few headings match, and caps the result at 20 entries.
func IdentifySections(text string) []string {
	lines := strings.Split(text, "\n")
	var found []string

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) > 100 {
			continue
		}

		num, title, ok := matchSectionLine(line)
		if !ok {
			continue
		}
		if len(title) <= 2 || len(title) >= 50 {
			continue
		}
		// Headings stand apart from running text: the previous line is blank
		// or short, or the next line starts a fresh paragraph.
		prev := ""
		if i > 0 {
			prev = strings.TrimSpace(lines[i-1])
		}
		next := ""
		if i < len(lines)-1 {
			next = strings.TrimSpace(lines[i+1])
		}
		if prev != "" && len(prev) >= 10 && next == "" {
			continue
		}

		entry := titleCase(title)
		if num != "" {
			entry = num + ". " + entry
		}
		if !contains(found, entry) {
			found = append(found, entry)
		}
	}

	if len(found) < 3 {
		found = sectionsBySubstring(text)
	}

	found = filterSimilar(found)
	if len(found) > 20 {
		found = found[:20]
	}
	return found
}

func matchSectionLine(line string) (num, title string, ok bool) {
	if m := numberedSection.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	if m := romanSection.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	if m := markdownSection.FindStringSubmatch(line); m != nil {
		return "", strings.TrimSpace(m[1]), true
	}
	if capsSection.MatchString(line) {
		return "", strings.TrimSpace(line), true
	}
	for _, s := range standardSections {
		if strings.EqualFold(strings.TrimSuffix(line, ":"), s) {
			return "", s, true
		}
	}
	return "", "", false
}

// sectionsBySubstring finds standard sections by plain substring probes when
// heading patterns fail (e.g. badly extracted PDFs).
func sectionsBySubstring(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, section := range standardSections {
		s := strings.ToLower(section)
		probes := []string{"\n" + s + "\n", "\n" + s + ":", "\n" + s + "."}
		for n := 1; n <= 5; n++ {
			probes = append(probes, "\n"+string(rune('0'+n))+". "+s)
		}
		for _, probe := range probes {
			if strings.Contains(lower, probe) {
				found = append(found, section)
				break
			}
		}
	}
	return found
}

// filterSimilar drops sections whose normalized title duplicates or is
// contained in an already kept one.
func filterSimilar(sections []string) []string {
	var filtered []string
	for _, section := range sections {
		normalized := strings.ToLower(sectionNumPrefix.ReplaceAllString(section, ""))
		duplicate := false
		for _, existing := range filtered {
			e := strings.ToLower(sectionNumPrefix.ReplaceAllString(existing, ""))
			if normalized == e || strings.Contains(e, normalized) || strings.Contains(normalized, e) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			filtered = append(filtered, section)
		}
	}
	return filtered
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
