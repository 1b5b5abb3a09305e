package data

import "sort"

// StoreView holds the attribute values of a product for one store view.
// The owning product is not referenced; callers pass its id explicitly.
type StoreView struct {
	Code     string
	StoreID  Ref[string, uint]
	TaxClass Ref[string, uint]

	Selects      map[string]Ref[string, uint]
	MultiSelects map[string]Ref[[]string, []uint]

	attributes map[string]*string
}

func newStoreView(code string) *StoreView {
	sv := &StoreView{
		Code:         code,
		Selects:      map[string]Ref[string, uint]{},
		MultiSelects: map[string]Ref[[]string, []uint]{},
		attributes:   map[string]*string{},
	}
	if code == GlobalStoreViewCode {
		sv.StoreID = Resolved[string, uint](0)
	} else {
		sv.StoreID = Unresolved[string, uint](code)
	}
	return sv
}

// SetAttribute sets a plain EAV value by attribute code.
func (sv *StoreView) SetAttribute(code, value string) {
	v := value
	sv.attributes[code] = &v
}

// ClearAttribute makes the attribute be written as NULL.
func (sv *StoreView) ClearAttribute(code string) {
	sv.attributes[code] = nil
}

// UnsetAttribute removes the attribute so it is not written at all.
func (sv *StoreView) UnsetAttribute(code string) {
	delete(sv.attributes, code)
}

// Attribute returns the value for code. ok is false when the attribute is not
// set or set to NULL.
func (sv *StoreView) Attribute(code string) (string, bool) {
	v, present := sv.attributes[code]
	if !present || v == nil {
		return "", false
	}
	return *v, true
}

// HasAttribute reports whether code is set, NULL included.
func (sv *StoreView) HasAttribute(code string) bool {
	_, ok := sv.attributes[code]
	return ok
}

// Attributes returns the plain EAV values; a nil value means NULL.
func (sv *StoreView) Attributes() map[string]*string {
	return sv.attributes
}

// AttributeCodes returns the set attribute codes in sorted order.
func (sv *StoreView) AttributeCodes() []string {
	codes := make([]string, 0, len(sv.attributes))
	for c := range sv.attributes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// ResolvedStoreID returns the store id once resolution succeeded.
func (sv *StoreView) ResolvedStoreID() (uint, bool) {
	return sv.StoreID.Value()
}
