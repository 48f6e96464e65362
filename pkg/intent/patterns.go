package intent

import "regexp"

// rule binds an intent to its patterns. Both the rule order and the
// pattern order inside a rule are significant.
//
// RE2's \b is ASCII-only: a non-ASCII letter counts as a boundary, and only
// the straight apostrophe matches in contractions.
type rule struct {
	intent   Intent
	patterns []*regexp.Regexp
}

var rules = []rule{
	{Greeting, compile(
		`(?i)\b(hi|hello|hey|good\s*(morning|afternoon|evening)|namaste)\b`,
		`(?i)\b(how\s*are\s*you|what's\s*up)\b`,
	)},
	{AdmissionInfo, compile(
		`(?i)\b(admission|admissions|apply|application|entrance|mrnat)\b`,
		`(?i)\b(how\s*to\s*(apply|get\s*admission))\b`,
		`(?i)\b(eligibility|requirements|criteria)\b`,
	)},
	{Courses, compile(
		`(?i)\b(courses?|programs?|degrees?|btech|mtech|bba|mba|bsc|msc|phd)\b`,
		`(?i)\b(what\s*(courses|programs).*available)\b`,
		`(?i)\b(engineering|management|law|science|computer|mechanical)\b`,
	)},
	{Fees, compile(
		`(?i)\b(fees?|fee\s*structure|cost|tuition|payment|scholarship)\b`,
		`(?i)\b(how\s*much.*cost|expensive|affordable)\b`,
	)},
	{Placements, compile(
		`(?i)\b(placement|placements|job|career|salary|package|recruiter)\b`,
		`(?i)\b(highest\s*package|companies|employment)\b`,
	)},
	{Facilities, compile(
		`(?i)\b(facilities|infrastructure|hostel|library|sports|lab)\b`,
		`(?i)\b(campus|accommodation|dining|transport)\b`,
	)},
	{Contact, compile(
		`(?i)\b(contact|phone|email|address|location|visit)\b`,
		`(?i)\b(how\s*to\s*(contact|reach))\b`,
	)},
	{CampusLife, compile(
		`(?i)\b(campus\s*life|student\s*life|clubs|activities|events)\b`,
		`(?i)\b(extracurricular|cultural|technical\s*fest)\b`,
	)},
	{Goodbye, compile(
		`(?i)\b(bye|goodbye|see\s*you|thanks?|thank\s*you)\b`,
		`(?i)\b(that's\s*all|no\s*more\s*questions)\b`,
	)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}
