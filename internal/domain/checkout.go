package domain

// CheckoutState is a snapshot of the checkout the strategies execute against
type CheckoutState struct {
	CheckoutID  string
	Order       OrderTotals
	Methods     []PaymentMethod
	Instruments []Instrument
}

// Method returns the payment method with the given id, if present
func (s *CheckoutState) Method(id string) (*PaymentMethod, bool) {
	for i := range s.Methods {
		if s.Methods[i].ID == id {
			return &s.Methods[i], true
		}
	}
	return nil, false
}

// Instrument returns the vaulted instrument with the given id, if present
func (s *CheckoutState) Instrument(id string) (*Instrument, bool) {
	for i := range s.Instruments {
		if s.Instruments[i].ID == id {
			return &s.Instruments[i], true
		}
	}
	return nil, false
}
