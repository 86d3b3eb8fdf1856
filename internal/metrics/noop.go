package metrics

// NoopCollector implements Collector without recording anything.
// Used when metrics are disabled.
type NoopCollector struct{}

var _ Collector = NoopCollector{}

func NewNoopCollector() NoopCollector { return NoopCollector{} }

func (NoopCollector) AuthFlowStarted()                    {}
func (NoopCollector) AuthCallbackCompleted(result string) {}
func (NoopCollector) RevocationCompleted(result string)   {}
func (NoopCollector) EmailSendCompleted(result string)    {}
func (NoopCollector) RateLimitRejected()                  {}
