package entity

// Module groups registrations so a domain package can hand its value objects,
// constructors and factories to any Builder in one call.
type Module struct {
	name          string
	registrations []registration
	submodules    []*Module
}

type registration struct {
	register func(b *Builder) error
}

func NewModule(name string) *Module {
	return &Module{
		name: name,
	}
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) Include(submodule *Module) *Module {
	m.submodules = append(m.submodules, submodule)
	return m
}

// apply registers submodules first, then value objects and callables in the
// order they were added.
func (m *Module) apply(b *Builder) error {
	for _, sub := range m.submodules {
		if err := sub.apply(b); err != nil {
			return err
		}
	}

	for _, r := range m.registrations {
		if err := r.register(b); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) Apply(modules ...*Module) error {
	for _, m := range modules {
		if err := m.apply(b); err != nil {
			return errModuleApplyFailed(m.name, err)
		}
	}
	return nil
}

func ModuleValueObject[V any](m *Module, fromPrimitive any) *Module {
	m.registrations = append(
		m.registrations, registration{
			register: func(b *Builder) error {
				return RegisterValueObject[V](b, fromPrimitive)
			},
		},
	)
	return m
}

func ModuleConstructor[T any](m *Module, fn any, params ...string) *Module {
	m.registrations = append(
		m.registrations, registration{
			register: func(b *Builder) error {
				return RegisterConstructor[T](b, fn, params...)
			},
		},
	)
	return m
}

func ModuleFactory[T any](m *Module, name string, fn any, params ...string) *Module {
	m.registrations = append(
		m.registrations, registration{
			register: func(b *Builder) error {
				return RegisterFactory[T](b, name, fn, params...)
			},
		},
	)
	return m
}
