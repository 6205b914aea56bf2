package prefs

// Season of the year a user wants to travel in.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// ParseSeason validates a raw season value.
func ParseSeason(raw string) (Season, bool) {
	switch Season(raw) {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn:
		return Season(raw), true
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

func ParseDifficulty(raw string) (Difficulty, bool) {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return Difficulty(raw), true
	}
	return "", false
}

type Transport string

const (
	TransportCar     Transport = "car"
	TransportOffroad Transport = "4x4"
	TransportMinibus Transport = "minibus"
	TransportBoat    Transport = "boat"
	TransportOnFoot  Transport = "on_foot"
)

func ParseTransport(raw string) (Transport, bool) {
	switch Transport(raw) {
	case TransportCar, TransportOffroad, TransportMinibus, TransportBoat, TransportOnFoot:
		return Transport(raw), true
	}
	return "", false
}

// Step names the single field the machine is waiting for next.
// An empty step means setup is either untouched or complete.
type Step string

const (
	StepNone       Step = ""
	StepLength     Step = "length_km"
	StepPrice      Step = "price_estimate"
	StepDifficulty Step = "difficulty"
	StepPopularity Step = "popularity"
	StepTransport  Step = "transport"
	StepTags       Step = "tags"
)

// Document is the per-user preference record, built up one field at a time.
// All fields stay unset until the user supplies them.
type Document struct {
	Season        Season     `json:"season,omitempty"`
	LengthKm      *float64   `json:"length_km,omitempty"`
	PriceEstimate *float64   `json:"price_estimate,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Popularity    *int       `json:"popularity,omitempty"`
	Transport     Transport  `json:"transport,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Step          Step       `json:"prefs_step,omitempty"`
}

// Empty reports whether nothing has been captured yet. An empty document is
// the only thing that blocks a rank request.
func (d *Document) Empty() bool {
	return d.Season == "" &&
		d.LengthKm == nil &&
		d.PriceEstimate == nil &&
		d.Difficulty == "" &&
		d.Popularity == nil &&
		d.Transport == "" &&
		len(d.Tags) == 0 &&
		d.Step == StepNone
}

// HasTag reports whether tag was already selected.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends tag unless it is already present. Selection is idempotent.
func (d *Document) AddTag(tag string) {
	if !d.HasTag(tag) {
		d.Tags = append(d.Tags, tag)
	}
}

// Reset clears every field and leaves the step unset.
func (d *Document) Reset() {
	*d = Document{}
}
