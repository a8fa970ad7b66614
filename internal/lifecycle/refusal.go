package lifecycle

import "fmt"

// RefusalCode identifies which precondition blocked a transition so the
// caller can prompt the specific corrective action instead of showing a
// generic failure.
type RefusalCode string

const (
	CodePaymentRequired   RefusalCode = "payment_required"
	CodeInvalidTransition RefusalCode = "invalid_transition"
	CodeValidation        RefusalCode = "validation"
)

// Refusal is a business-rule rejection. It is an error so it can flow
// through the usual return paths, but callers are expected to branch on
// the code.
type Refusal struct {
	Code   RefusalCode
	Detail string
}

func (r *Refusal) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

func NewRefusal(code RefusalCode, format string, args ...interface{}) *Refusal {
	return &Refusal{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// AsRefusal unwraps err into a *Refusal if it is one.
func AsRefusal(err error) (*Refusal, bool) {
	r, ok := err.(*Refusal)
	return r, ok
}
