package services

import "strings"

// EmergencyConfig holds the phrase list scanned on every turn. Constructed
// once at startup and passed in, never mutated afterwards.
type EmergencyConfig struct {
	Phrases []string
}

// DefaultEmergencyConfig returns the built-in emergency phrase list.
func DefaultEmergencyConfig() EmergencyConfig {
	return EmergencyConfig{
		Phrases: []string{
			// Cardiac
			"chest pain", "heart attack", "cardiac arrest", "heart failure",

			// Mental health
			"suicidal", "suicide", "kill myself", "end my life", "self harm",
			"want to die", "better off dead",

			// Bleeding
			"severe bleeding", "heavy bleeding", "bleeding profusely", "hemorrhage",

			// Respiratory
			"difficulty breathing", "cant breathe", "can't breathe", "choking",
			"suffocating", "shortness of breath", "gasping",

			// Neurological
			"stroke", "face drooping", "slurred speech", "sudden weakness",
			"sudden numbness", "severe headache", "worst headache",

			// Allergic
			"severe allergic reaction", "anaphylaxis", "throat closing", "swelling throat",

			// Consciousness
			"loss of consciousness", "passed out", "unconscious", "unresponsive",

			// Trauma
			"severe injury", "major accident", "broken bone", "head injury",
			"overdose",
		},
	}
}

const emergencyResponse = `MEDICAL EMERGENCY DETECTED

PLEASE SEEK IMMEDIATE MEDICAL ATTENTION:

- Call emergency services (Rescue 1122)
- Go to the nearest emergency room
- Contact your nearest hospital immediately

For Islamabad:
- PIMS Hospital Emergency: 051-9261170
- Shifa International Hospital: 051-8463100

For Lahore:
- Jinnah Hospital Emergency: 042-99231536
- Shaukat Khanum Hospital: 042-35905000

Your life and safety are the top priority. Please seek professional medical help immediately before considering any doctor consultations.`

// EmergencyService scans user messages for high-severity phrases. It runs
// before any other interpretation step; a positive match short-circuits
// the whole turn.
type EmergencyService struct {
	phrases []string
}

// NewEmergencyService creates a new emergency detection service
func NewEmergencyService(cfg EmergencyConfig) *EmergencyService {
	return &EmergencyService{phrases: cfg.Phrases}
}

// Detect reports whether the message contains any emergency phrase.
// Matching is case-insensitive substring containment; it never errors
// on arbitrary input.
func (s *EmergencyService) Detect(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range s.phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Response returns the fixed emergency-contact reply. No external call is
// made for emergencies.
func (s *EmergencyService) Response() string {
	return emergencyResponse
}
