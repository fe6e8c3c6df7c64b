package typestore

import "github.com/blockberries/rosmsg/pkg/typedesc"

// ros1Defaults returns the one wire1 message shape referenced so
// pervasively by other messages' Header fields that a fresh store is
// expected to already know them, matching spec.md §4.E's
// "ros1_defaults" preset. std_msgs/msg/Header carries the ROS1 "seq"
// field (spec.md §3 invariant 5, wire1 Header shape).
func ros1Defaults() []*typedesc.Descriptor {
	return []*typedesc.Descriptor{
		{
			Name: "std_msgs/msg/Header",
			Kind: typedesc.KindMessage,
			Fields: []typedesc.Field{
				{Name: "seq", Type: typedesc.BaseType{Name: "uint32", Bound: -1}},
				{Name: "stamp", Type: typedesc.BaseType{Name: "time", Bound: -1}},
				{Name: "frame_id", Type: typedesc.BaseType{Name: "string", Bound: -1}},
			},
		},
	}
}

// ros2Defaults returns the CDR-side equivalents: std_msgs/msg/Header
// without "seq" (spec.md §3 invariant 5, CDR Header shape) plus
// builtin_interfaces/msg/Time, which std_msgs/msg/Header's "stamp" field
// references by name on the CDR side rather than using the base "time"
// type directly.
func ros2Defaults() []*typedesc.Descriptor {
	return []*typedesc.Descriptor{
		{
			Name: "builtin_interfaces/msg/Time",
			Kind: typedesc.KindMessage,
			Fields: []typedesc.Field{
				{Name: "sec", Type: typedesc.BaseType{Name: "int32", Bound: -1}},
				{Name: "nanosec", Type: typedesc.BaseType{Name: "uint32", Bound: -1}},
			},
		},
		{
			Name: "std_msgs/msg/Header",
			Kind: typedesc.KindMessage,
			Fields: []typedesc.Field{
				{Name: "stamp", Type: typedesc.NameRef{Name: "builtin_interfaces/msg/Time"}},
				{Name: "frame_id", Type: typedesc.BaseType{Name: "string", Bound: -1}},
			},
		},
	}
}
