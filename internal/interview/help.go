package interview

import "strings"

// helpVerbs signal the user is asking for suggestions rather than answering.
var helpVerbs = []string{"help", "suggest", "suggestion", "example", "what should", "ideas", "typical", "recommend"}

// helpSections maps section names to the keywords that reference them.
var helpSections = []struct {
	name     string
	keywords []string
}{
	{"responsibilities", []string{"responsibilities", "duties"}},
	{"requirements", []string{"requirements", "qualifications"}},
	{"skills", []string{"skills"}},
	{"keywords", []string{"keywords", "seo"}},
	{"summary", []string{"summary", "description"}},
	{"culture_and_team", []string{"culture", "team"}},
}

// DetectHelpRequest returns the post section the user wants suggestions for,
// or "" when the message is a regular interview answer. Both a help verb and
// a section keyword must be present so that plain answers mentioning
// "skills" are not mistaken for help requests.
func DetectHelpRequest(message string) string {
	lower := strings.ToLower(message)
	verb := false
	for _, v := range helpVerbs {
		if strings.Contains(lower, v) {
			verb = true
			break
		}
	}
	if !verb {
		return ""
	}
	for _, s := range helpSections {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.name
			}
		}
	}
	return ""
}
