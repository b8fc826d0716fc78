package domain

import "encoding/json"

type DescribeInput struct {
	IP     string
	Prefix int
}

type SplitInput struct {
	Network string
	Subnets int
}

type RecordInput struct {
	Kind   string
	Input  string
	Result json.RawMessage
}
