package dispatch

import "github.com/objcore/msgdispatch/internal/classrec"

// Class, Method, MethodList, and Imp are re-exported from internal/classrec
// so callers of pkg/dispatch never need to import an internal package
// directly; classrec itself stays internal because it is the reference
// implementation of a collaborator a real host runtime supplies on its own
// (the class record and its method lists), not part of the dispatch core
// proper.
type (
	Class      = classrec.Class
	Method     = classrec.Method
	MethodList = classrec.MethodList
	Imp        = classrec.Imp
)

// NewClass constructs an uninitialized class record with no methods.
func NewClass(name string, super *Class) *Class {
	return classrec.NewClass(name, super)
}
