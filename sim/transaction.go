package sim

// TransactionKind classifies what a client wants from a service interaction.
type TransactionKind string

const (
	// KindNone marks a client that has not reached a clerk yet.
	KindNone    TransactionKind = ""
	RequestItem TransactionKind = "request_item"
	ReturnItem  TransactionKind = "return_item"
	Consult     TransactionKind = "consult"
)

func (k TransactionKind) String() string {
	if k == KindNone {
		return "unclassified"
	}
	return string(k)
}

// Return service bounds are fixed by the counter's procedure, not configured.
const (
	returnServiceMin = 1.5
	returnServiceMax = 2.5
)

// TransactionMix holds the probability of each transaction kind.
// The three values must sum to 1.
type TransactionMix struct {
	Request float64 `yaml:"request" json:"request"`
	Return  float64 `yaml:"return" json:"return"`
	Consult float64 `yaml:"consult" json:"consult"`
}

// Classify maps a uniform draw onto a transaction kind by cumulative probability.
func (m TransactionMix) Classify(r float64) TransactionKind {
	switch {
	case r < m.Request:
		return RequestItem
	case r < m.Request+m.Return:
		return ReturnItem
	default:
		return Consult
	}
}

// UniformBounds is a closed-open interval [A, B) with A < B.
type UniformBounds struct {
	A float64 `yaml:"a" json:"a"`
	B float64 `yaml:"b" json:"b"`
}

// ServiceModel turns a transaction kind and one draw into a service duration.
type ServiceModel struct {
	ConsultBounds UniformBounds
	RequestMean   float64
}

// Sample draws the service duration for kind and returns it with its draw.
// Panics on KindNone: a client is always classified before service.
func (m ServiceModel) Sample(kind TransactionKind, v *Variates) (duration, draw float64) {
	switch kind {
	case Consult:
		return v.UniformRange(m.ConsultBounds.A, m.ConsultBounds.B)
	case ReturnItem:
		return v.UniformRange(returnServiceMin, returnServiceMax)
	case RequestItem:
		return v.Exponential(m.RequestMean)
	default:
		panic("ServiceModel.Sample: client has no transaction kind")
	}
}
