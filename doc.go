// Package entity builds typed domain values from untyped records.
//
// Rows, request payloads, form data and config files arrive as flat maps of
// primitives. Entity matches the keys of such a record to the construction
// parameters of a target type, turns primitives into value objects where a
// parameter asks for one, and calls the type's constructor or named factory.
//
// # Quick Start
//
//	type ModelID struct{ v int }
//
//	func ModelIDFromPrimitive(v int) ModelID { return ModelID{v: v} }
//
//	b := entity.New()
//	entity.MustRegisterValueObject[ModelID](b, ModelIDFromPrimitive)
//	entity.MustRegisterConstructor[*Model](b, NewModel,
//	    "id", "primitive_id", "primitive_string", "nullable_address,optional")
//
//	m, err := entity.ByConstructor[*Model](b, map[string]any{
//	    "id":               100,
//	    "primitive_id":     200,
//	    "primitive_string": "string",
//	})
//
// # Construction Parameters
//
// Go reflection does not expose parameter names, so every registered callable
// comes with one descriptor per formal parameter, in order:
//
//	"name"           // required
//	"name,optional"  // absent keys resolve to the zero value
//
// Pointer, interface and Optional[T] parameters are optional without the
// option.
//
// A struct with no registered constructor is built as a struct literal. Its
// exported fields are the parameters, named by the `entity` tag or by the
// snake_case form of the field name:
//
//	type Address struct {
//	    City   string  `entity:"city"`
//	    Street string                      // key "street"
//	    Zip    *string                     // optional
//	    Note   string  `entity:",optional"`
//	    Cache  string  `entity:"-"`        // not a parameter
//	}
//
// # Static Factories
//
// Types whose only entry point is a named factory register it by name:
//
//	entity.MustRegisterFactory[*Model](b, "create", CreateModel,
//	    "id", "primitive_id", "primitive_string")
//
//	m, err := entity.ByStaticConstructor[*Model](b, "create", input)
//
// # Value Objects
//
// A parameter whose type is a value object is coerced from its primitive
// through the canonical factory registered with RegisterValueObject, or
// through the ValueObject interface:
//
//	func (id *ModelID) FromPrimitive(raw any) error { ... }
//
// Input that already holds the value object is passed through untouched.
// Factories may take another value object, forming a chain that is checked for
// cycles at registration time:
//
//	entity.MustRegisterValueObject[Email](b, ParseEmail)       // string -> Email
//	entity.MustRegisterValueObject[Contact](b, NewContact)     // Email -> Contact
//
// # Prefixes
//
// One flat record can feed several constructions when keys are namespaced:
//
//	addr, err := entity.ByConstructor[Address](b, map[string]any{
//	    "address_city":   "Moscow",
//	    "address_street": "Krasnaya",
//	}, entity.WithPrefix("address"))
//
// The prefix and the name are joined with "_" unless WithSeparator says
// otherwise. Exactly one key is looked up per parameter.
//
// # Inputs
//
// Maps keyed by strings, url.Values, structs and pointers to structs are
// normalized to a Record before resolution and behave identically. The hclinput
// package turns HCL attributes and cty values into a Record.
//
// # Errors
//
// A required parameter absent from the input fails with ErrCodeMissingParameter;
// the error names the target, the parameter and the looked-up key, and suggests
// the closest key present in the record:
//
//	if entity.IsMissingParameter(err) { ... }
//	if errors.Is(err, entity.ErrMissingParameter) { ... }
//
// Value-object factory failures are wrapped as ErrCodeCoercionFailed. Errors
// returned by constructors and factories themselves are returned as-is.
//
// # Debugging
//
//	plan, _ := entity.Describe[*Model](b)
//	plan.Print()          // parameter table
//	err := b.Validate()   // unsatisfiable or circular value-object chains
//
// # Observers
//
//	b := entity.New(
//	    entity.WithLogger(logger),
//	    entity.WithBuildObserver(func(target, callable string, d time.Duration, err error) {
//	        metrics.RecordBuild(target, d, err)
//	    }),
//	)
package entity
