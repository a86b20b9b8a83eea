package model

// CustomerType classifies the kind of business on the other side of the
// conversation.
type CustomerType string

const (
	CustomerUnknown    CustomerType = "unknown"
	CustomerStartup    CustomerType = "startup"
	CustomerPyme       CustomerType = "pyme"
	CustomerEnterprise CustomerType = "enterprise"
	CustomerFreelancer CustomerType = "freelancer"
)

// Urgency is the detected urgency level of the customer's need.
type Urgency string

const (
	UrgencyUnknown  Urgency = "unknown"
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// BuyingStage is the customer's position in the buying process.
type BuyingStage string

const (
	StageAwareness     BuyingStage = "awareness"
	StageConsideration BuyingStage = "consideration"
	StageDecision      BuyingStage = "decision"
	StageRetention     BuyingStage = "retention"
)

// Objection categories recognized by the profiler.
const (
	ObjectionPrice       = "price"
	ObjectionTime        = "time"
	ObjectionTrust       = "trust"
	ObjectionTechnical   = "technical"
	ObjectionCompetition = "competition"
	ObjectionIndecision  = "indecision"
)

// Profile accumulates everything learned about the customer within one
// session. It is created fresh per session and discarded on reset.
type Profile struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`

	CustomerType CustomerType `json:"customer_type"`
	Industry     string       `json:"industry,omitempty"`
	BusinessSize string       `json:"business_size,omitempty"`

	BuyingStage BuyingStage `json:"buying_stage"`
	Urgency     Urgency     `json:"urgency"`

	// Objections, PainPoints and InterestedProducts keep insertion order
	// and never contain duplicates.
	Objections         []string `json:"objections"`
	PainPoints         []string `json:"pain_points"`
	InterestedProducts []string `json:"interested_products"`

	// EngagementScore only grows within a session; QualificationScore is
	// recomputed from scratch on every update. Both are clamped to [0,100].
	EngagementScore    float64 `json:"engagement_score"`
	QualificationScore float64 `json:"qualification_score"`
}

// NewProfile returns an empty profile with enum fields at their defaults.
func NewProfile() *Profile {
	return &Profile{
		CustomerType: CustomerUnknown,
		Urgency:      UrgencyUnknown,
		BuyingStage:  StageAwareness,
	}
}

// HasObjection reports whether the given objection category was recorded.
func (p *Profile) HasObjection(category string) bool {
	for _, o := range p.Objections {
		if o == category {
			return true
		}
	}
	return false
}

// AddObjection records an objection category if not already present.
func (p *Profile) AddObjection(category string) bool {
	if p.HasObjection(category) {
		return false
	}
	p.Objections = append(p.Objections, category)
	return true
}

// AddPainPoint records a pain point if not already present.
func (p *Profile) AddPainPoint(pain string) {
	for _, existing := range p.PainPoints {
		if existing == pain {
			return
		}
	}
	p.PainPoints = append(p.PainPoints, pain)
}

// AddInterest records an interesting product or topic if not already present.
func (p *Profile) AddInterest(id string) {
	for _, existing := range p.InterestedProducts {
		if existing == id {
			return
		}
	}
	p.InterestedProducts = append(p.InterestedProducts, id)
}
