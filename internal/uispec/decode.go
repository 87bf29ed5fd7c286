package uispec

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/fieldmark/designer/internal/notebook"
)

// Envelope is the wire form of an operation: its name plus a JSON payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

var decoders = map[string]func([]byte) (Operation, error){
	"loaded":                               decodeAs[Loaded],
	"fieldUpdated":                         decodeAs[FieldUpdated],
	"fieldMoved":                           decodeAs[FieldMoved],
	"fieldMovedToSection":                  decodeAs[FieldMovedToSection],
	"fieldRenamed":                         decodeAs[FieldRenamed],
	"fieldAdded":                           decodeAs[FieldAdded],
	"fieldDeleted":                         decodeAs[FieldDeleted],
	"fieldDuplicated":                      decodeAs[FieldDuplicated],
	"fieldConditionChanged":                decodeAs[FieldConditionChanged],
	"toggleFieldProtection":                decodeAs[FieldProtectionToggled],
	"toggleFieldHidden":                    decodeAs[FieldHiddenToggled],
	"sectionRenamed":                       decodeAs[SectionRenamed],
	"sectionAdded":                         decodeAs[SectionAdded],
	"sectionDuplicated":                    decodeAs[SectionDuplicated],
	"sectionDeleted":                       decodeAs[SectionDeleted],
	"sectionMovedToForm":                   decodeAs[SectionMovedToForm],
	"sectionMoved":                         decodeAs[SectionMoved],
	"sectionConditionChanged":              decodeAs[SectionConditionChanged],
	"sectionDescriptionUpdated":            decodeAs[SectionDescriptionUpdated],
	"viewSetAdded":                         decodeAs[ViewSetAdded],
	"viewSetDeleted":                       decodeAs[ViewSetDeleted],
	"viewSetMoved":                         decodeAs[ViewSetMoved],
	"viewSetRenamed":                       decodeAs[ViewSetRenamed],
	"viewSetSummaryFieldsUpdated":          decodeAs[ViewSetSummaryFieldsUpdated],
	"viewSetLayoutUpdated":                 decodeAs[ViewSetLayoutUpdated],
	"viewSetHridUpdated":                   decodeAs[ViewSetHridUpdated],
	"viewSetPublishButtonBehaviourUpdated": decodeAs[ViewSetPublishButtonBehaviourUpdated],
	"formVisibilityUpdated":                decodeAs[FormVisibilityUpdated],
}

func decodeAs[T Operation](payload []byte) (Operation, error) {
	var op T
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, &op); err != nil {
		return nil, err
	}
	return op, nil
}

// OperationNames lists every operation name DecodeOperation accepts.
func OperationNames() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeOperation builds the operation called name from its JSON payload.
func DecodeOperation(name string, payload []byte) (Operation, error) {
	decode, ok := decoders[name]
	if !ok {
		return nil, &NotFoundError{Operation: "decode", Kind: "operation", ID: name}
	}
	op, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s payload: %v", ErrInvalid, name, err)
	}
	return op, nil
}

// Decode builds the operation carried by the envelope.
func (e Envelope) Decode() (Operation, error) {
	return DecodeOperation(e.Type, e.Payload)
}

// Encode wraps op in an envelope.
func Encode(op Operation) (Envelope, error) {
	payload, err := json.Marshal(op)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode %s: %w", op.Name(), err)
	}
	return Envelope{Type: op.Name(), Payload: payload}, nil
}

type scriptStep struct {
	Type    string         `yaml:"type"`
	Payload map[string]any `yaml:"payload"`
}

// StepError reports the script step that could not be decoded.
type StepError struct {
	Step int
	Type string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Type, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DecodeScript reads a YAML or JSON list of {type, payload} steps.
func DecodeScript(data []byte) ([]Operation, error) {
	var steps []scriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse operation script: %w", err)
	}

	ops := make([]Operation, 0, len(steps))
	for i, step := range steps {
		payload, err := json.Marshal(step.Payload)
		if err != nil {
			return nil, &StepError{Step: i + 1, Type: step.Type, Err: err}
		}
		op, err := DecodeOperation(step.Type, payload)
		if err != nil {
			return nil, &StepError{Step: i + 1, Type: step.Type, Err: err}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// MarshalJSON encodes the replacement spec as the whole payload.
func (op Loaded) MarshalJSON() ([]byte, error) {
	if op.Spec == nil {
		return json.Marshal(notebook.NewUISpec())
	}
	return json.Marshal(op.Spec)
}

// UnmarshalJSON reads a bare UI specification.
func (op *Loaded) UnmarshalJSON(data []byte) error {
	spec := notebook.NewUISpec()
	if err := json.Unmarshal(data, spec); err != nil {
		return err
	}
	op.Spec = spec
	return nil
}
