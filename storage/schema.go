package storage

// Column binds a short field name to the exact question text used as the
// survey export header.
type Column struct {
	Key      string
	Header   string
	Required bool
}

// Short field names used throughout the analysis.
const (
	KeyTimestamp   = "timestamp"
	KeyEmail       = "email"
	KeyRegion      = "region"
	KeyFrequency   = "frequency"
	KeyCar         = "car"
	KeyBus         = "bus"
	KeyTrain       = "train"
	KeyBike        = "bike"
	KeyWalk        = "walk"
	KeyWork        = "work"
	KeyKids        = "kids"
	KeyPleasure    = "pleasure"
	KeyOtherReason = "other_reason"
	KeyCongestion  = "congestion"
	KeySupport     = "support"
	KeyPrice       = "price"
)

// SurveyColumns is the header contract for the survey export. Loading
// fails when a required header is absent rather than guessing.
var SurveyColumns = []Column{
	{KeyTimestamp, "Submitted at", false},
	{KeyEmail, "What is your email address?", false},
	{KeyRegion, "What region do you live in?", true},
	{KeyFrequency, "How often do you enter Howth?", true},
	{KeyCar, "How do you usually enter Howth? (Car / Motorcycle)", true},
	{KeyBus, "How do you usually enter Howth? (Bus)", true},
	{KeyTrain, "How do you usually enter Howth? (Train)", true},
	{KeyBike, "How do you usually enter Howth? (Bike / Scooter)", true},
	{KeyWalk, "How do you usually enter Howth? (Walk)", true},
	{KeyWork, "Why do you usually make these journeys into Howth? (Work)", true},
	{KeyKids, "Why do you usually make these journeys into Howth? (Dropping off children for school)", true},
	{KeyPleasure, "Why do you usually make these journeys into Howth? (Tourism / Pleasure)", true},
	{KeyOtherReason, "Why do you usually make these journeys into Howth? (Other)", true},
	{KeyCongestion, "On a scale of 1-5, how big of an issue is congestion in Howth? (5 being the most)", true},
	{KeySupport, "Would you support congestion pricing (a daily fee to enter by car, only at peak hours) in Howth, which would lower traffic and delays? (only for non-residents)", true},
	{KeyPrice, "If congestion pricing was implemented, what is the maximum price (€) you would pay before stopping driving to enter Howth through Sutton Cross?", true},
}

// TrafficColumns is the header contract for traffic count files.
var TrafficColumns = []string{"time", "howth_count", "sutton_count"}

// missingHeaders returns every wanted header absent from have.
func missingHeaders(have []string, want []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var missing []string
	for _, w := range want {
		if _, ok := set[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}

func requiredSurveyHeaders() []string {
	var out []string
	for _, c := range SurveyColumns {
		if c.Required {
			out = append(out, c.Header)
		}
	}
	return out
}
