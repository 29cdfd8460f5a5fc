package runtime

import "labddk/pkg/runtime"

func (in *SerialInstrument) DeepCopyObject() runtime.RunObject {
	if in == nil {
		return nil
	}
	out := *in

	if in.Node != nil {
		node := *in.Node
		out.Node = &node
	}
	out.Address = in.Address.DeepCopy()

	return &out
}

func (in *Address) DeepCopy() *Address {
	if in == nil {
		return nil
	}

	out := *in
	out.Option = in.Option.DeepCopy()

	return &out
}

func (in *Option) DeepCopy() *Option {
	if in == nil {
		return nil
	}

	out := *in

	return &out
}

func (in *VirtualInstrument) DeepCopyObject() runtime.RunObject {
	if in == nil {
		return nil
	}
	out := *in

	return &out
}
