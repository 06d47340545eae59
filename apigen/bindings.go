package apigen

import "context"

// BuildBindings creates one binding per descriptor, each forwarding its
// input to dispatch under the descriptor's name. Calling the same
// binding twice with equal input issues two independent dispatch calls;
// nothing is memoized.
//
// The binding table's capability surface is exactly the dispatch
// function it was given: bindings capture no other state.
func BuildBindings(descriptors []ToolDescriptor, dispatch Dispatch) Bindings {
	bindings := make(Bindings, len(descriptors))
	for _, d := range descriptors {
		name := d.Name
		bindings[name] = func(ctx context.Context, input map[string]any) (any, error) {
			return dispatch(ctx, name, input)
		}
	}
	return bindings
}
