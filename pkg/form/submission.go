package form

// Status is the submission state of a form.
type Status string

const (
	// StatusIdle means no submission is in flight.
	StatusIdle Status = "idle"
	// StatusSubmitting means the external submit handler has been invoked
	// and has not yet signalled completion.
	StatusSubmitting Status = "submitting"
)

// controller gates submissions: at most one in flight, repeat triggers
// ignored while submitting. There is deliberately no timeout path back to
// idle; a handler that never signals completion leaves the form submitting,
// which is the accepted tradeoff against double submission.
type controller struct {
	status Status
}

func newController() controller {
	return controller{status: StatusIdle}
}

// begin transitions idle→submitting. It reports false, leaving the state
// unchanged, when a submission is already in flight.
func (c *controller) begin() bool {
	if c.status == StatusSubmitting {
		return false
	}
	c.status = StatusSubmitting
	return true
}

// finish transitions submitting→idle. It reports false when the controller
// was already idle, making stray completion signals harmless.
func (c *controller) finish() bool {
	if c.status != StatusSubmitting {
		return false
	}
	c.status = StatusIdle
	return true
}

func (c *controller) submitting() bool {
	return c.status == StatusSubmitting
}
