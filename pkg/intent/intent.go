// Package intent classifies a user utterance into one of a fixed set of
// topics using ordered keyword rules.
//
// Classification is priority ordered, not best match: the first intent in
// Intents() with any matching pattern wins. When nothing matches the result
// is GeneralInfo.
package intent

// Intent is the topic label assigned to one utterance.
type Intent string

const (
	Greeting      Intent = "greeting"
	AdmissionInfo Intent = "admission_info"
	Courses       Intent = "courses"
	Fees          Intent = "fees"
	Placements    Intent = "placements"
	Facilities    Intent = "facilities"
	Contact       Intent = "contact"
	CampusLife    Intent = "campus_life"
	Goodbye       Intent = "goodbye"
	GeneralInfo   Intent = "general_info"
)

// All lists every label, fallback last.
func All() []Intent {
	return []Intent{
		Greeting,
		AdmissionInfo,
		Courses,
		Fees,
		Placements,
		Facilities,
		Contact,
		CampusLife,
		Goodbye,
		GeneralInfo,
	}
}

// Valid reports whether i is one of the known labels.
func (i Intent) Valid() bool {
	for _, known := range All() {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}
