package main

import (
	"fmt"

	"github.com/objcore/msgdispatch/internal/scenario"
	"github.com/objcore/msgdispatch/pkg/dispatch"
)

// instance is the minimal receiver shape dispatch.Runtime's default
// class-resolution collaborator expects: something with a Class() method.
type instance struct {
	class *dispatch.Class
}

func (o *instance) Class() *dispatch.Class { return o.class }

// world holds everything built from a loaded scenario.File: every class by
// name, and one instance per class to use as a message send's receiver.
type world struct {
	classes   map[string]*dispatch.Class
	instances map[string]*instance
}

// buildWorld constructs classes in file order, requiring each class's Super
// (if any) to have already appeared — matching classgen's own generation
// order, and mirroring the original's expectation that superclasses are
// loaded before their subclasses.
func buildWorld(r *dispatch.Runtime, f *scenario.File) (*world, error) {
	w := &world{
		classes:   make(map[string]*dispatch.Class, len(f.Classes)),
		instances: make(map[string]*instance, len(f.Classes)),
	}

	for _, cd := range f.Classes {
		var super *dispatch.Class
		if cd.Super != "" {
			var ok bool
			super, ok = w.classes[cd.Super]
			if !ok {
				return nil, fmt.Errorf("class %q references undefined super %q (must appear earlier in the file)", cd.Name, cd.Super)
			}
		}
		class := dispatch.NewClass(cd.Name, super)

		list := make(dispatch.MethodList, len(cd.Methods))
		for i, md := range cd.Methods {
			list[i] = dispatch.Method{Name: md.Name, Types: md.Types, Imp: buildImp(cd.Name, md.Name, md.Body)}
		}
		if len(list) > 0 {
			r.AddMethodList(class, list)
		}

		w.classes[cd.Name] = class
		w.instances[cd.Name] = &instance{class: class}
	}
	return w, nil
}
