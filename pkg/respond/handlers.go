package respond

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/unibot/pkg/knowledge"
)

var greetingLines = []string{
	"Hello! Welcome to Manav Rachna University. I'm your virtual assistant.",
	"Hi there! I'm here to help you with information about MRU.",
	"Namaste! Welcome to Manav Rachna University. How can I assist you today?",
}

var goodbyeLines = []string{
	"Thank you for your interest in Manav Rachna University! Feel free to contact us for any further assistance.",
	"It was great helping you learn about MRU. Best wishes for your academic journey!",
	"Thank you for connecting with us. We look forward to welcoming you to the MRU family!",
}

// GreetingSuffix follows every greeting line.
const GreetingSuffix = " I can help you with admissions, courses, fees, placements, facilities, and more. What would you like to know?"

// GreetingLines returns the possible greeting openers.
func GreetingLines() []string {
	return append([]string{}, greetingLines...)
}

// GoodbyeLines returns the possible closing lines.
func GoodbyeLines() []string {
	return append([]string{}, goodbyeLines...)
}

func (g *Generator) greeting() string {
	return g.pick(greetingLines) + GreetingSuffix
}

func (g *Generator) goodbye() string {
	contact := g.kb.Get(knowledge.TopicContact)
	return g.pick(goodbyeLines) + fmt.Sprintf("\n\nFor admissions: %s | Email: %s",
		contact.Get("main_numbers", "admissions").Text(),
		contact.Get("email").Text(),
	)
}

func (g *Generator) admissions(text string) string {
	adm := g.kb.Get(knowledge.TopicAdmissions)

	switch {
	case containsAny(text, "mrnat", "entrance"):
		test := adm.Get("entrance_test")
		return fmt.Sprintf(`MRNAT (Manav Rachna National Aptitude Test) is our entrance cum scholarship test. Here are the key details:

📅 Exam Dates 2025: %s
⏱️ Duration: %s
📝 Format: %s

For UG programs: %s
For PG programs: %s

Students can earn scholarships up to 100%% based on their MRNAT performance!`,
			test.Get("dates_2025").Text(),
			test.Get("duration").Text(),
			test.Get("format").Text(),
			strings.Join(test.Get("sections_ug").List(), ", "),
			strings.Join(test.Get("sections_pg").List(), ", "),
		)

	case containsAny(text, "process", "apply"):
		return fmt.Sprintf("Here's the admission process for MRU:\n\n%s\n\nApplication fee is %s.",
			numbered(adm.Get("application_process").List()),
			g.kb.Get(knowledge.TopicFees, "application_fee").Text(),
		)

	case containsAny(text, "scholarship"):
		sch := adm.Get("scholarships")
		return fmt.Sprintf(`MRU offers excellent scholarship opportunities:

🎯 %s
🎯 %s
💰 %s
🏆 %s

Scholarships are awarded based on MRNAT performance and academic merit.`,
			sch.Get("utkarsh_scheme").Text(),
			sch.Get("uttam_scheme").Text(),
			sch.Get("percentage").Text(),
			sch.Get("merit_scholarships").Text(),
		)

	default:
		return `MRU admissions are primarily through MRNAT - our entrance cum scholarship test. Key highlights:

✅ Online application process
✅ Scholarships up to 100% available
✅ Multiple intake opportunities
✅ Comprehensive support throughout

Would you like specific information about MRNAT, application process, or scholarships?`
	}
}

func (g *Generator) courses(text string) string {
	courses := g.kb.Get(knowledge.TopicCourses)

	switch {
	case containsAny(text, "btech", "engineering", "computer", "mechanical"):
		core, specialized := split(courses.Get("undergraduate", "engineering").List(), 4)
		return fmt.Sprintf(`MRU offers excellent B.Tech programs with industry partnerships:

🔧 Core Engineering:
%s

🤖 Specialized Programs:
%s

Our engineering programs feature industry collaborations with companies like L&T, Microsoft, Xebia, and Quick Heal!`,
			bullets(core), bullets(specialized))

	case containsAny(text, "bba", "mba", "management", "business"):
		return fmt.Sprintf(`MRU Management Programs:

🎓 Undergraduate (BBA):
%s

🎓 Postgraduate (MBA):
%s

Our management programs include industry partnerships and practical exposure!`,
			bullets(courses.Get("undergraduate", "management").List()),
			bullets(courses.Get("postgraduate", "management").List()),
		)

	case containsAny(text, "law", "llb", "llm", "legal"):
		return fmt.Sprintf(`MRU Law Programs:

⚖️ Undergraduate:
%s

⚖️ Postgraduate:
%s

Our law programs are approved by Bar Council of India and focus on practical legal education.`,
			bullets(courses.Get("undergraduate", "law").List()),
			bullets(courses.Get("postgraduate", "law").List()),
		)

	default:
		return `MRU offers 100+ courses across multiple disciplines:

🔧 Engineering: B.Tech, M.Tech programs with industry partnerships
💼 Management: BBA, MBA with various specializations
⚖️ Law: BA LLB, BBA LLB, LLM programs
🔬 Sciences: B.Sc, M.Sc in Mathematics, Physics, Chemistry
🎓 Education: B.Ed, Integrated programs
📚 Computer Applications: BCA, MCA
🔬 Research: Ph.D programs in all disciplines

Which specific area interests you? I can provide detailed information!`
	}
}

func (g *Generator) fees() string {
	fees := g.kb.Get(knowledge.TopicFees)
	annual := fees.Get("approximate_annual_fees")

	return fmt.Sprintf(`MRU Fee Structure (Approximate Annual Fees):

💰 B.Tech: %s
💰 BBA: %s
💰 B.Sc (Hons): %s
💰 M.Sc: %s
💰 Ph.D: %s
💰 B.Ed: %s

📋 Application Fee: %s

💡 Great News: Scholarships up to 100%% are available based on MRNAT performance!
🏦 Educational loans available at low interest rates
💳 Flexible payment options

Would you like information about scholarships or specific course fees?`,
		annual.Get("btech").Text(),
		annual.Get("bba").Text(),
		annual.Get("bsc_hons").Text(),
		annual.Get("msc").Text(),
		annual.Get("phd").Text(),
		annual.Get("bed").Text(),
		fees.Get("application_fee").Text(),
	)
}

func (g *Generator) placements() string {
	placements := g.kb.Get(knowledge.TopicPlacements)
	stats := placements.Get("statistics")
	top, _ := split(placements.Get("recruiters").List(), 10)

	return fmt.Sprintf(`MRU Placement Highlights:

🎯 Highest Package: %s
📈 Total Placements (Last 5 Years): %s

🌟 Recent Top Placements:
%s

🏢 Top Recruiters include:
%s... and many more!

Our dedicated Career Resource & Career Development Centre (CRCDC) provides:
✅ 100%% placement assistance
✅ Industry training programs
✅ Mock interviews and preparation
✅ Internship opportunities
✅ Career counseling

MRU is ranked No. 1 for placements among emerging universities!`,
		stats.Get("highest_package").Text(),
		stats.Get("placements_last_5_years").Text(),
		bullets(stats.Get("recent_highlights").List()),
		strings.Join(top, ", "),
	)
}

func (g *Generator) facilities(text string) string {
	facilities := g.kb.Get(knowledge.TopicFacilities)

	switch {
	case containsAny(text, "hostel", "accommodation"):
		return fmt.Sprintf(`MRU Hostel Facilities:

🏠 Accommodation:
%s

The hostels provide a safe, comfortable environment for students with modern amenities and a homely atmosphere.`,
			bullets(facilities.Get("residential").List()))

	case containsAny(text, "sports"):
		return fmt.Sprintf(`MRU Sports Facilities:

🏃 Sports Infrastructure:
%s

MRU has produced 35 Arjuna Awardees and has a dedicated Sports Academy!`,
			bullets(facilities.Get("sports").List()))

	default:
		sports, _ := split(facilities.Get("sports").List(), 4)
		return fmt.Sprintf(`MRU World-Class Facilities:

🎓 Academic Facilities:
%s

🏠 Residential Facilities:
%s

🏃 Sports Facilities:
%s

🍽️ Other Amenities:
%s

Our campus provides a comprehensive environment for holistic development!`,
			bullets(facilities.Get("academic").List()),
			bullets(facilities.Get("residential").List()),
			bullets(sports),
			bullets(facilities.Get("other").List()),
		)
	}
}

func (g *Generator) contact() string {
	contact := g.kb.Get(knowledge.TopicContact)
	numbers := contact.Get("main_numbers")

	return fmt.Sprintf(`Contact Manav Rachna University:

📞 Main Numbers:
• MRU: %s
• Admissions: %s
• General Queries: %s

📧 Email: %s

📍 Address: %s

🌐 Website: %s

🏢 City Offices: %s

Feel free to contact us for any queries. Our admission counselors are available to guide you!`,
		numbers.Get("mru").Text(),
		numbers.Get("admissions").Text(),
		numbers.Get("general_queries").Text(),
		contact.Get("email").Text(),
		contact.Get("address").Text(),
		contact.Get("website").Text(),
		contact.Get("city_offices").Text(),
	)
}

func (g *Generator) campusLife() string {
	life := g.kb.Get(knowledge.TopicCampusLife)

	return fmt.Sprintf(`Life at MRU Campus:

🎭 Student Clubs & Societies:
%s

🎉 Regular Events:
%s

MRU believes in holistic development and provides numerous opportunities for students to explore their interests beyond academics. Our vibrant campus life ensures a well-rounded educational experience!

Would you like to know more about any specific activities or facilities?`,
		bullets(life.Get("clubs").List()),
		bullets(life.Get("events").List()),
	)
}

func (g *Generator) general() string {
	info := g.kb.Get(knowledge.TopicUniversity)

	return fmt.Sprintf(`About Manav Rachna University:

🎓 %s is a leading %s
📅 Established: %s
🏆 Recognition: %s
📍 Location: %s
🥇 Ranking: %s

Mission: "%s"

I can help you with:
• Admissions and MRNAT information
• Course details and specializations
• Fee structure and scholarships
• Placement statistics and recruiters
• Campus facilities and hostel information
• Contact details and location

What specific information would you like to know about MRU?`,
		info.Get("name").Text(),
		info.Get("type").Text(),
		info.Get("established").Text(),
		info.Get("recognition").Text(),
		info.Get("location").Text(),
		info.Get("ranking").Text(),
		info.Get("motto").Text(),
	)
}
