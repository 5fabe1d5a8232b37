package chat

import (
	"context"
	"fmt"
	"strings"

	"intern-match/internal/usecase"
)

type rule struct {
	keywords []string
	answer   func(req usecase.ChatRequest) string
}

// Rules is the offline responder. It matches the question against keyword
// groups in order and answers from canned text, personalised with the
// profile when one is available.
type Rules struct {
	rules []rule
}

func NewRules() *Rules {
	return &Rules{rules: []rule{
		{keywords: []string{"apply", "application", "applied"}, answer: answerApply},
		{keywords: []string{"recommend", "match", "suggest", "suitable", "best"}, answer: answerRecommend},
		{keywords: []string{"profile", "update", "education"}, answer: answerProfile},
		{keywords: []string{"skill", "learn", "improve", "course"}, answer: answerSkills},
		{keywords: []string{"bookmark", "save", "saved"}, answer: answerBookmark},
		{keywords: []string{"eligible", "eligibility", "qualify", "requirement"}, answer: answerEligibility},
		{keywords: []string{"stipend", "salary", "pay", "paid"}, answer: answerStipend},
		{keywords: []string{"hello", "hi", "hey"}, answer: answerGreeting},
	}}
}

func (r *Rules) Name() string { return "rules" }

func (r *Rules) Respond(_ context.Context, req usecase.ChatRequest) (string, error) {
	words := tokenize(req.Query)
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if hasWord(words, kw) {
				return rl.answer(req), nil
			}
		}
	}
	return answerDefault(req), nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// hasWord matches whole words. Keywords longer than three letters also
// match their -s, -ing and -ed forms.
func hasWord(words []string, kw string) bool {
	for _, w := range words {
		if w == kw {
			return true
		}
		if len(kw) > 3 && (w == kw+"s" || w == kw+"ing" || w == kw+"ed") {
			return true
		}
	}
	return false
}

func answerApply(usecase.ChatRequest) string {
	return "Open an internship and press Apply. Each internship accepts one application per student, " +
		"and you can follow its status (pending, accepted or rejected) under My Applications."
}

func answerRecommend(req usecase.ChatRequest) string {
	p := req.Profile
	if p == nil || !p.Complete() {
		return "Complete your profile with your education level, skills and interests first. " +
			"Recommendations are ranked by how well internships overlap with them."
	}
	msg := fmt.Sprintf("Your recommendations are ranked for a %s student", p.EducationLevel)
	if len(p.Skills) > 0 {
		msg += " with skills in " + joinFirst(p.Skills, 3)
	}
	msg += ". Open the Recommendations page to see the best matches and why each was suggested."
	return msg
}

func answerProfile(usecase.ChatRequest) string {
	return "Go to My Profile to set your education level, field of study, skills, interests and preferred locations. " +
		"Changes take effect on your next recommendation request."
}

func answerSkills(req usecase.ChatRequest) string {
	if p := req.Profile; p != nil && len(p.Interests) > 0 {
		return fmt.Sprintf("Internships in %s usually ask for the skills listed on each posting. "+
			"Compare them with your profile and add the ones you have practised.", joinFirst(p.Interests, 2))
	}
	return "Look at the required skills on postings that interest you and add the ones you have practised to your profile."
}

func answerBookmark(usecase.ChatRequest) string {
	return "Use the bookmark icon on any internship to save it. Pressing it again removes the bookmark."
}

func answerEligibility(req usecase.ChatRequest) string {
	if p := req.Profile; p != nil && p.EducationLevel.Valid() {
		return fmt.Sprintf("Each internship lists the education levels it accepts. As a %s student you qualify "+
			"for postings open to your level or any level below it.", p.EducationLevel)
	}
	return "Each internship lists the education levels it accepts. Set your education level in your profile to see which ones you qualify for."
}

func answerStipend(usecase.ChatRequest) string {
	return "The stipend is shown on every internship card. Amounts are set by the organisation offering the internship."
}

func answerGreeting(usecase.ChatRequest) string {
	return "Hi! I can help you find internships, explain recommendations or guide you through applying."
}

func answerDefault(usecase.ChatRequest) string {
	return "I can help with recommendations, applications, bookmarks and your profile. Try asking how to apply or which internships suit you."
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

var _ usecase.Responder = (*Rules)(nil)
