package notebook

// StructuralError reports document-level corruption. It is fatal: the whole
// import aborts and the store is left untouched.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural error: " + e.Reason
}
